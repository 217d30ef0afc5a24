package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/repository"
)

// AnalyticsService arma el reporte historico de 30 dias. Es solo lectura.
type AnalyticsService struct {
	logger     *zap.Logger
	profiles   repository.ProfileRepository
	echoes     repository.EchoRepository
	activities repository.ActivityRepository
	cache      AnalyticsCache
	cacheTTL   time.Duration
	now        func() time.Time
}

func NewAnalyticsService(
	logger *zap.Logger,
	profiles repository.ProfileRepository,
	echoes repository.EchoRepository,
	activities repository.ActivityRepository,
	cache AnalyticsCache,
	cacheTTL time.Duration,
) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		logger:     logger,
		profiles:   profiles,
		echoes:     echoes,
		activities: activities,
		cache:      cache,
		cacheTTL:   cacheTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *AnalyticsService) GetAnalytics(ctx context.Context, userID string) (domain.AnalyticsReport, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.AnalyticsReport{}, ErrMissingUserID
	}

	if s.cache != nil {
		report, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("analytics cache read failed", zap.String("user_id", userID), zap.Error(err))
		} else if ok {
			return report, nil
		}
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AnalyticsReport{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.AnalyticsReport{}, fmt.Errorf("get profile: %w", err)
	}

	now := s.now()
	since := now.Add(-analyticsWindow)
	echoes, err := s.echoes.ListSince(ctx, userID, since)
	if err != nil {
		return domain.AnalyticsReport{}, fmt.Errorf("list echoes: %w", err)
	}

	counts := make(domain.ActivityCounts, len(domain.ActivityKinds))
	if s.activities != nil {
		for _, kind := range domain.ActivityKinds {
			n, err := s.activities.Count(ctx, kind, userID, "", since)
			if err != nil {
				return domain.AnalyticsReport{}, fmt.Errorf("count %s: %w", kind, err)
			}
			counts[kind] = n
		}
	}

	report := ComputeAnalytics(AnalyticsInput{
		UserID:   userID,
		Echoes:   echoes,
		Profile:  profile,
		Activity: counts,
		Now:      now,
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, report, s.cacheTTL); err != nil {
			s.logger.Warn("analytics cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return report, nil
}
