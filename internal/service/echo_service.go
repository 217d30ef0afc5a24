package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/repository"
)

const (
	maxEchoRunes     = 5000
	defaultEchoLimit = 20
	maxEchoLimit     = 100
)

var (
	ErrMissingUserID            = errors.New("user id required")
	ErrEchoInvalidInput         = errors.New("echo invalid input")
	ErrRateLimited              = errors.New("too many echoes, slow down")
	ErrProfileNotFound          = errors.New("user profile not found")
	ErrEchoServiceNotConfigured = errors.New("echo service not configured")
)

// WellnessInsights resume el estado del usuario tras un echo.
type WellnessInsights struct {
	MoodTrend        string `json:"mood_trend"`
	DominantEmotion  string `json:"dominant_emotion"`
	WellnessScore    int    `json:"wellness_score"`
	Streak           int    `json:"streak"`
	TotalReflections int    `json:"total_reflections"`
	Suggestion       string `json:"suggestion"`
}

// EchoResult es lo que recibe quien envia un echo.
type EchoResult struct {
	EchoID           string             `json:"id"`
	Response         string             `json:"response"`
	MoodScore        float64            `json:"mood_score"`
	EmotionTags      []string           `json:"emotion_tags"`
	SeedType         domain.SeedType    `json:"seed_type"`
	GrowthStage      domain.GrowthStage `json:"growth_stage"`
	WellnessInsights WellnessInsights   `json:"wellness_insights"`
}

type SubmitEchoInput struct {
	UserID string
	Text   string
}

// EchoService orquesta el pipeline: clasificar, generar, persistir y actualizar el perfil.
type EchoService struct {
	logger      *zap.Logger
	store       repository.WellnessStore
	echoes      repository.EchoRepository
	mood        *MoodClassifier
	seeds       *SeedTypeClassifier
	generator   *ResponseGenerator
	suggestions SuggestionSelector
	limiter     EchoRateLimiter
	cache       AnalyticsCache
	now         func() time.Time
}

func NewEchoService(
	logger *zap.Logger,
	store repository.WellnessStore,
	echoes repository.EchoRepository,
	mood *MoodClassifier,
	seeds *SeedTypeClassifier,
	generator *ResponseGenerator,
	suggestions SuggestionSelector,
) *EchoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mood == nil {
		mood = NewMoodClassifier(nil)
	}
	if seeds == nil {
		seeds = NewSeedTypeClassifier(nil)
	}
	if generator == nil {
		generator = NewResponseGenerator(nil, 0, logger)
	}
	return &EchoService{
		logger:      logger,
		store:       store,
		echoes:      echoes,
		mood:        mood,
		seeds:       seeds,
		generator:   generator,
		suggestions: suggestions,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithRateLimiter limita envios por usuario; nil desactiva el limite.
func (s *EchoService) WithRateLimiter(limiter EchoRateLimiter) *EchoService {
	s.limiter = limiter
	return s
}

// WithAnalyticsCache permite invalidar el reporte cacheado tras cada echo.
func (s *EchoService) WithAnalyticsCache(cache AnalyticsCache) *EchoService {
	s.cache = cache
	return s
}

func (s *EchoService) SubmitEcho(ctx context.Context, in SubmitEchoInput) (EchoResult, error) {
	if s == nil || s.store == nil {
		return EchoResult{}, ErrEchoServiceNotConfigured
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return EchoResult{}, ErrMissingUserID
	}
	if utf8.RuneCountInString(in.Text) > maxEchoRunes {
		return EchoResult{}, fmt.Errorf("%w: text exceeds %d characters", ErrEchoInvalidInput, maxEchoRunes)
	}
	if s.limiter != nil && !s.limiter.Allow(ctx, userID) {
		return EchoResult{}, ErrRateLimited
	}

	mood := s.mood.ClassifyMood(in.Text)
	seedType := s.seeds.ClassifySeedType(in.Text)
	// La generacion va antes de abrir la transaccion para no retener el lock durante I/O de red.
	generated := s.generator.GenerateResponse(ctx, in.Text, mood.Tags, mood.Score)
	stage := GrowthStageFor(mood.Score)

	now := s.now()
	echo := domain.Echo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Content:     in.Text,
		Response:    generated.Text,
		MoodScore:   mood.Score,
		EmotionTags: mood.Tags,
		SeedType:    seedType,
		GrowthStage: stage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var profile domain.WellnessProfile
	err := s.store.WithinTx(ctx, func(tx repository.WellnessTx) error {
		prior, err := tx.LockProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock profile: %w", err)
		}
		profile = ApplyEcho(prior, echo)
		if err := tx.InsertEcho(ctx, echo); err != nil {
			return fmt.Errorf("insert echo: %w", err)
		}
		if err := tx.SaveProfile(ctx, profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("echo persistence failed", zap.String("user_id", userID), zap.Error(err))
		return EchoResult{}, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("analytics cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.logger.Info("echo planted",
		zap.String("user_id", userID),
		zap.String("echo_id", echo.ID),
		zap.Float64("mood_score", echo.MoodScore),
		zap.Bool("fallback_response", generated.FromFallback),
	)

	return EchoResult{
		EchoID:      echo.ID,
		Response:    echo.Response,
		MoodScore:   echo.MoodScore,
		EmotionTags: echo.EmotionTags,
		SeedType:    echo.SeedType,
		GrowthStage: echo.GrowthStage,
		WellnessInsights: WellnessInsights{
			MoodTrend:        moodTrendLabel(echo.MoodScore),
			DominantEmotion:  dominantEmotion(echo.EmotionTags),
			WellnessScore:    profile.WellnessScore,
			Streak:           profile.CurrentStreak,
			TotalReflections: profile.TotalEchoes,
			Suggestion:       s.suggestions.SelectSuggestion(echo.EmotionTags, echo.MoodScore),
		},
	}, nil
}

// ListEchoes devuelve el historial mas reciente primero.
func (s *EchoService) ListEchoes(ctx context.Context, userID string, limit int) ([]domain.Echo, error) {
	if s == nil || s.echoes == nil {
		return nil, ErrEchoServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if limit <= 0 {
		limit = defaultEchoLimit
	}
	if limit > maxEchoLimit {
		limit = maxEchoLimit
	}
	echoes, err := s.echoes.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list echoes: %w", err)
	}
	if echoes == nil {
		echoes = []domain.Echo{}
	}
	return echoes, nil
}

func moodTrendLabel(moodScore float64) string {
	switch {
	case moodScore > 0:
		return "improving"
	case moodScore < -0.3:
		return "needs_attention"
	default:
		return "stable"
	}
}

func dominantEmotion(tags []string) string {
	if len(tags) == 0 {
		return domain.NeutralEmotion
	}
	return tags[0]
}
