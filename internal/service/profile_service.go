package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/repository"
)

const newProfileMessage = "Start planting your first echo to begin your wellness journey!"

// ProfileView es el perfil expuesto al cliente, con la tendencia de la ultima semana.
type ProfileView struct {
	domain.WellnessProfile
	MoodTrendWeek      []float64 `json:"mood_trend_week"`
	MoodTrendDirection string    `json:"mood_trend_direction"`
	Message            string    `json:"message,omitempty"`
}

type ProfileService struct {
	profiles repository.ProfileRepository
	echoes   repository.EchoRepository
	now      func() time.Time
}

func NewProfileService(profiles repository.ProfileRepository, echoes repository.EchoRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		echoes:   echoes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile nunca devuelve not found: un usuario sin echoes recibe un perfil inicial.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (ProfileView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ProfileView{}, ErrMissingUserID
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProfileView{
			WellnessProfile: domain.WellnessProfile{
				UserID:        userID,
				WellnessScore: baseWellnessScore,
				Achievements:  []string{},
			},
			MoodTrendWeek:      []float64{},
			MoodTrendDirection: "stable",
			Message:            newProfileMessage,
		}, nil
	}
	if err != nil {
		return ProfileView{}, fmt.Errorf("get profile: %w", err)
	}
	if profile.Achievements == nil {
		profile.Achievements = []string{}
	}

	recent, err := s.echoes.ListSince(ctx, userID, s.now().Add(-trendWindow))
	if err != nil {
		return ProfileView{}, fmt.Errorf("list recent echoes: %w", err)
	}
	trend := make([]float64, 0, len(recent))
	for _, e := range recent {
		trend = append(trend, e.MoodScore)
	}

	direction := "stable"
	if len(trend) > 1 && trend[len(trend)-1] > trend[0] {
		direction = "improving"
	}
	return ProfileView{
		WellnessProfile:    profile,
		MoodTrendWeek:      trend,
		MoodTrendDirection: direction,
	}, nil
}
