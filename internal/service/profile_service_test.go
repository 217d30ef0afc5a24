package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"echo-bloom/internal/domain"
)

func TestGetProfile_DefaultForNewUser(t *testing.T) {
	svc := NewProfileService(&mockWellnessProfileRepo{}, &mockEchoRepo{})
	view, err := svc.GetProfile(context.Background(), "newbie")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.TotalEchoes != 0 || view.WellnessScore != 50 || view.MoodAverage != 0 || view.CurrentStreak != 0 {
		t.Fatalf("unexpected default profile %+v", view)
	}
	if view.Message != "Start planting your first echo to begin your wellness journey!" {
		t.Fatalf("unexpected message %q", view.Message)
	}
	if view.Achievements == nil || len(view.Achievements) != 0 {
		t.Fatalf("expected empty achievements, got %v", view.Achievements)
	}
}

func TestGetProfile_WithWeeklyTrend(t *testing.T) {
	now := time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC)
	profiles := &mockWellnessProfileRepo{profiles: map[string]domain.WellnessProfile{
		"u1": {UserID: "u1", TotalEchoes: 3, WellnessScore: 58},
	}}
	echoes := &mockEchoRepo{echoes: []domain.Echo{
		{UserID: "u1", MoodScore: -0.2, CreatedAt: now.Add(-48 * time.Hour)},
		{UserID: "u1", MoodScore: 0.4, CreatedAt: now.Add(-time.Hour)},
		{UserID: "u1", MoodScore: 0.9, CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}}
	svc := NewProfileService(profiles, echoes)
	svc.now = func() time.Time { return now }

	view, err := svc.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.MoodTrendWeek) != 2 || view.MoodTrendWeek[0] != -0.2 || view.MoodTrendWeek[1] != 0.4 {
		t.Fatalf("unexpected weekly trend %v", view.MoodTrendWeek)
	}
	if view.MoodTrendDirection != "improving" || view.Message != "" {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.WellnessScore != 58 {
		t.Fatalf("expected stored profile, got %+v", view.WellnessProfile)
	}
}

func TestGetProfile_StableWithSinglePoint(t *testing.T) {
	now := time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC)
	profiles := &mockWellnessProfileRepo{profiles: map[string]domain.WellnessProfile{"u1": {UserID: "u1"}}}
	echoes := &mockEchoRepo{echoes: []domain.Echo{{UserID: "u1", MoodScore: 0.9, CreatedAt: now}}}
	svc := NewProfileService(profiles, echoes)
	svc.now = func() time.Time { return now }

	view, err := svc.GetProfile(context.Background(), "u1")
	if err != nil || view.MoodTrendDirection != "stable" {
		t.Fatalf("expected stable direction, got %+v (%v)", view, err)
	}
}

func TestGetProfile_Errors(t *testing.T) {
	svc := NewProfileService(&mockWellnessProfileRepo{err: errStorage}, &mockEchoRepo{})
	if _, err := svc.GetProfile(context.Background(), "u1"); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := svc.GetProfile(context.Background(), ""); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}
