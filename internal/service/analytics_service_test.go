package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"echo-bloom/internal/domain"
)

func newTestAnalyticsService(profiles *mockWellnessProfileRepo, echoes *mockEchoRepo, activities *mockActivityRepo, cache AnalyticsCache) *AnalyticsService {
	svc := NewAnalyticsService(zap.NewNop(), profiles, echoes, activities, cache, time.Minute)
	svc.now = func() time.Time { return analyticsNow }
	return svc
}

func TestGetAnalytics_ProfileNotFound(t *testing.T) {
	svc := newTestAnalyticsService(&mockWellnessProfileRepo{}, &mockEchoRepo{}, &mockActivityRepo{}, nil)
	_, err := svc.GetAnalytics(context.Background(), "ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetAnalytics_MissingUserID(t *testing.T) {
	svc := newTestAnalyticsService(&mockWellnessProfileRepo{}, &mockEchoRepo{}, &mockActivityRepo{}, nil)
	if _, err := svc.GetAnalytics(context.Background(), " "); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}

func TestGetAnalytics_BuildsReportFromStorage(t *testing.T) {
	profiles := &mockWellnessProfileRepo{profiles: map[string]domain.WellnessProfile{
		"u1": {UserID: "u1", WellnessScore: 70, CurrentStreak: 4, LongestStreak: 6, TotalEchoes: 12},
	}}
	echoes := &mockEchoRepo{echoes: []domain.Echo{
		moodEcho(dayAt(9, 9), 0.3, "calm"),
		moodEcho(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), -1, "depression"),
	}}
	activities := &mockActivityRepo{counts: map[countKey]int{
		{kind: domain.ActivityJournal, recent: true}:   3,
		{kind: domain.ActivityGrounding, recent: true}: 1,
	}}
	svc := newTestAnalyticsService(profiles, echoes, activities, nil)

	report, err := svc.GetAnalytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !echoes.lastSince.Equal(analyticsNow.Add(-30 * 24 * time.Hour)) {
		t.Fatalf("expected 30-day window, got %v", echoes.lastSince)
	}
	if len(report.MoodTrends.ThirtyDays) != 1 {
		t.Fatalf("expected only in-window echoes, got %+v", report.MoodTrends.ThirtyDays)
	}
	if report.Profile.WellnessScore != 70 || report.Profile.LongestStreak != 6 {
		t.Fatalf("unexpected profile snapshot %+v", report.Profile)
	}
	if report.ActivityStats.Journal != 3 || report.ActivityStats.Total != 4 {
		t.Fatalf("unexpected activity stats %+v", report.ActivityStats)
	}
	if !containsString(report.Insights, "You've been most engaged with journal exercises (3 sessions)") {
		t.Fatalf("missing activity insight in %v", report.Insights)
	}
	if !containsString(report.Insights, "You're building momentum with a 4-day streak! Keep going!") {
		t.Fatalf("missing streak insight in %v", report.Insights)
	}
	for _, since := range activities.sinces {
		if since.IsZero() {
			t.Fatalf("expected activity counts bounded to the window")
		}
	}
}

func TestGetAnalytics_UsesCache(t *testing.T) {
	ctx := context.Background()
	profiles := &mockWellnessProfileRepo{profiles: map[string]domain.WellnessProfile{"u1": {UserID: "u1"}}}
	cache := NewMemoryAnalyticsCache()
	svc := newTestAnalyticsService(profiles, &mockEchoRepo{}, &mockActivityRepo{}, cache)

	first, err := svc.GetAnalytics(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetAnalytics(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.getCalls != 1 {
		t.Fatalf("expected second call served from cache, got %d profile reads", profiles.getCalls)
	}
	if !first.GeneratedAt.Equal(second.GeneratedAt) {
		t.Fatalf("expected identical cached report")
	}
}

func TestGetAnalytics_StorageErrors(t *testing.T) {
	profiles := &mockWellnessProfileRepo{profiles: map[string]domain.WellnessProfile{"u1": {UserID: "u1"}}}

	svc := newTestAnalyticsService(profiles, &mockEchoRepo{err: errStorage}, &mockActivityRepo{}, nil)
	if _, err := svc.GetAnalytics(context.Background(), "u1"); !errors.Is(err, errStorage) {
		t.Fatalf("expected echo storage error, got %v", err)
	}

	svc = newTestAnalyticsService(profiles, &mockEchoRepo{}, &mockActivityRepo{countErr: errStorage}, nil)
	if _, err := svc.GetAnalytics(context.Background(), "u1"); !errors.Is(err, errStorage) {
		t.Fatalf("expected activity storage error, got %v", err)
	}

	svc = newTestAnalyticsService(&mockWellnessProfileRepo{err: errStorage}, &mockEchoRepo{}, &mockActivityRepo{}, nil)
	if _, err := svc.GetAnalytics(context.Background(), "u1"); !errors.Is(err, errStorage) || errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected profile storage error, got %v", err)
	}
}
