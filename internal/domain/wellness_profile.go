package domain

import (
	"slices"
	"time"
)

const (
	AchievementFirstBloom    = "first_bloom"
	AchievementWeekWarrior   = "week_warrior"
	AchievementGratitudeGuru = "gratitude_guru"
)

// WellnessProfile es el agregado acumulado por usuario. Hay uno solo por UserID.
type WellnessProfile struct {
	UserID             string    `json:"user_id"`
	TotalEchoes        int       `json:"total_echoes"`
	MonthlyReflections int       `json:"monthly_reflections"`
	GratitudeCount     int       `json:"gratitude_count"`
	MoodAverage        float64   `json:"mood_average"`
	CurrentStreak      int       `json:"current_streak"`
	LongestStreak      int       `json:"longest_streak"`
	WellnessScore      int       `json:"wellness_score"` // 0-100
	Achievements       []string  `json:"achievements"`
	LastEchoAt         time.Time `json:"last_echo_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// HasAchievement indica si el logro ya fue otorgado.
func (p *WellnessProfile) HasAchievement(id string) bool {
	return slices.Contains(p.Achievements, id)
}

// Clone devuelve una copia profunda para no compartir el slice de logros.
func (p WellnessProfile) Clone() WellnessProfile {
	p.Achievements = slices.Clone(p.Achievements)
	return p
}
