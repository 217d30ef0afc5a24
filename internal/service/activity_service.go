package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/repository"
)

const (
	defaultActivityLimit = 10
	defaultTechnique     = "box_breathing"
)

var ErrActivityInvalidInput = errors.New("activity invalid input")

// ActivityStatsView resume la actividad total y la de los ultimos 7 dias.
type ActivityStatsView struct {
	TotalActivities   int `json:"total_activities"`
	BreathingSessions int `json:"breathing_sessions"`
	JournalEntries    int `json:"journal_entries"`
	GratitudeEntries  int `json:"gratitude_entries"`
	GroundingSessions int `json:"grounding_sessions"`
	ThisWeekCount     int `json:"this_week_count"`
}

// ActivityService registra ejercicios guiados y expone su historial.
type ActivityService struct {
	logger     *zap.Logger
	activities repository.ActivityRepository
	store      repository.WellnessStore
	cache      AnalyticsCache
	now        func() time.Time
}

func NewActivityService(logger *zap.Logger, activities repository.ActivityRepository, store repository.WellnessStore, cache AnalyticsCache) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		logger:     logger,
		activities: activities,
		store:      store,
		cache:      cache,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ActivityService) CreateBreathing(ctx context.Context, in domain.BreathingSession) (domain.BreathingSession, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return domain.BreathingSession{}, ErrMissingUserID
	}
	if in.CyclesCompleted < 0 || in.DurationSeconds < 0 {
		return domain.BreathingSession{}, ErrActivityInvalidInput
	}
	if strings.TrimSpace(in.Technique) == "" {
		in.Technique = defaultTechnique
	}
	in.ID = uuid.NewString()
	in.CompletedAt = s.now()

	if err := s.activities.CreateBreathing(ctx, in); err != nil {
		return domain.BreathingSession{}, fmt.Errorf("create breathing session: %w", err)
	}
	s.invalidate(ctx, in.UserID)
	return in, nil
}

func (s *ActivityService) CreateJournal(ctx context.Context, in domain.JournalEntry) (domain.JournalEntry, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return domain.JournalEntry{}, ErrMissingUserID
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return domain.JournalEntry{}, ErrActivityInvalidInput
	}
	if in.Prompts == nil {
		in.Prompts = []string{}
	}
	if in.Responses == nil {
		in.Responses = map[string]string{}
	}
	if in.EmotionTags == nil {
		in.EmotionTags = []string{}
	}
	in.WordCount = JournalWordCount(in.Responses)
	in.ID = uuid.NewString()
	in.CompletedAt = s.now()

	if err := s.activities.CreateJournal(ctx, in); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("create journal entry: %w", err)
	}
	s.invalidate(ctx, in.UserID)
	return in, nil
}

// CreateGratitude guarda la practica y suma cada item al contador de gratitud del perfil en la misma transaccion.
func (s *ActivityService) CreateGratitude(ctx context.Context, in domain.GratitudeEntry) (domain.GratitudeEntry, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return domain.GratitudeEntry{}, ErrMissingUserID
	}
	if len(in.Gratitudes) == 0 {
		return domain.GratitudeEntry{}, ErrActivityInvalidInput
	}
	if in.Themes == nil {
		in.Themes = []string{}
	}
	in.ID = uuid.NewString()
	in.CompletedAt = s.now()

	err := s.store.WithinTx(ctx, func(tx repository.WellnessTx) error {
		if err := tx.InsertGratitude(ctx, in); err != nil {
			return fmt.Errorf("create gratitude entry: %w", err)
		}
		if err := tx.AddGratitude(ctx, in.UserID, len(in.Gratitudes)); err != nil {
			return fmt.Errorf("update gratitude count: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.GratitudeEntry{}, err
	}
	s.invalidate(ctx, in.UserID)
	return in, nil
}

func (s *ActivityService) CreateGrounding(ctx context.Context, in domain.GroundingSession) (domain.GroundingSession, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" {
		return domain.GroundingSession{}, ErrMissingUserID
	}
	if in.DurationSeconds < 0 {
		return domain.GroundingSession{}, ErrActivityInvalidInput
	}
	if r := in.EffectivenessRating; r != nil && (*r < 1 || *r > 5) {
		return domain.GroundingSession{}, ErrActivityInvalidInput
	}
	in.ID = uuid.NewString()
	in.CompletedAt = s.now()

	if err := s.activities.CreateGrounding(ctx, in); err != nil {
		return domain.GroundingSession{}, fmt.Errorf("create grounding session: %w", err)
	}
	s.invalidate(ctx, in.UserID)
	return in, nil
}

func (s *ActivityService) ListBreathing(ctx context.Context, userID string, limit int) ([]domain.BreathingSession, int, error) {
	userID, limit, err := normalizeListArgs(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.activities.ListBreathing(ctx, userID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list breathing sessions: %w", err)
	}
	total, err := s.activities.Count(ctx, domain.ActivityBreathing, userID, "", time.Time{})
	if err != nil {
		return nil, 0, fmt.Errorf("count breathing sessions: %w", err)
	}
	if items == nil {
		items = []domain.BreathingSession{}
	}
	return items, total, nil
}

func (s *ActivityService) ListJournal(ctx context.Context, userID, category string, limit int) ([]domain.JournalEntry, int, error) {
	userID, limit, err := normalizeListArgs(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	category = strings.TrimSpace(category)
	items, err := s.activities.ListJournal(ctx, userID, category, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list journal entries: %w", err)
	}
	total, err := s.activities.Count(ctx, domain.ActivityJournal, userID, category, time.Time{})
	if err != nil {
		return nil, 0, fmt.Errorf("count journal entries: %w", err)
	}
	if items == nil {
		items = []domain.JournalEntry{}
	}
	return items, total, nil
}

func (s *ActivityService) ListGratitude(ctx context.Context, userID string, limit int) ([]domain.GratitudeEntry, int, error) {
	userID, limit, err := normalizeListArgs(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.activities.ListGratitude(ctx, userID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list gratitude entries: %w", err)
	}
	total, err := s.activities.Count(ctx, domain.ActivityGratitude, userID, "", time.Time{})
	if err != nil {
		return nil, 0, fmt.Errorf("count gratitude entries: %w", err)
	}
	if items == nil {
		items = []domain.GratitudeEntry{}
	}
	return items, total, nil
}

func (s *ActivityService) ListGrounding(ctx context.Context, userID string, limit int) ([]domain.GroundingSession, int, error) {
	userID, limit, err := normalizeListArgs(userID, limit)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.activities.ListGrounding(ctx, userID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list grounding sessions: %w", err)
	}
	total, err := s.activities.Count(ctx, domain.ActivityGrounding, userID, "", time.Time{})
	if err != nil {
		return nil, 0, fmt.Errorf("count grounding sessions: %w", err)
	}
	if items == nil {
		items = []domain.GroundingSession{}
	}
	return items, total, nil
}

// Stats cuenta cada tipo por separado; this_week es la suma de cuatro conteos independientes.
func (s *ActivityService) Stats(ctx context.Context, userID string) (ActivityStatsView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ActivityStatsView{}, ErrMissingUserID
	}
	weekAgo := s.now().Add(-trendWindow)

	totals := make(domain.ActivityCounts, len(domain.ActivityKinds))
	week := make(domain.ActivityCounts, len(domain.ActivityKinds))
	for _, kind := range domain.ActivityKinds {
		n, err := s.activities.Count(ctx, kind, userID, "", time.Time{})
		if err != nil {
			return ActivityStatsView{}, fmt.Errorf("count %s: %w", kind, err)
		}
		totals[kind] = n
		w, err := s.activities.Count(ctx, kind, userID, "", weekAgo)
		if err != nil {
			return ActivityStatsView{}, fmt.Errorf("count %s this week: %w", kind, err)
		}
		week[kind] = w
	}

	return ActivityStatsView{
		TotalActivities:   totals.Total(),
		BreathingSessions: totals[domain.ActivityBreathing],
		JournalEntries:    totals[domain.ActivityJournal],
		GratitudeEntries:  totals[domain.ActivityGratitude],
		GroundingSessions: totals[domain.ActivityGrounding],
		ThisWeekCount:     week.Total(),
	}, nil
}

// JournalWordCount suma las palabras de todas las respuestas.
func JournalWordCount(responses map[string]string) int {
	total := 0
	for _, r := range responses {
		total += len(strings.Fields(r))
	}
	return total
}

func (s *ActivityService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func normalizeListArgs(userID string, limit int) (string, int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", 0, ErrMissingUserID
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxEchoLimit {
		limit = maxEchoLimit
	}
	return userID, limit, nil
}
