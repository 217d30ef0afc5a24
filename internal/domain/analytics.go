package domain

import "time"

type DailyMood struct {
	Date      string  `json:"date"` // 2006-01-02 (UTC)
	MoodScore float64 `json:"mood_score"`
	EchoCount int     `json:"echo_count"`
}

type WeeklyWellness struct {
	Week          string  `json:"week"` // ISO: 2006-W01
	WellnessScore float64 `json:"wellness_score"`
}

type EmotionShare struct {
	Emotion    string  `json:"emotion"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MoodTrends struct {
	SevenDays      []DailyMood `json:"seven_days"`
	ThirtyDays     []DailyMood `json:"thirty_days"`
	CurrentAverage float64     `json:"current_average"`
}

type ProfileSnapshot struct {
	WellnessScore  int      `json:"wellness_score"`
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
	TotalEchoes    int      `json:"total_echoes"`
	GratitudeCount int      `json:"gratitude_count"`
	Achievements   []string `json:"achievements"`
}

type ActivityStats struct {
	Breathing int `json:"breathing"`
	Journal   int `json:"journal"`
	Gratitude int `json:"gratitude"`
	Grounding int `json:"grounding"`
	Total     int `json:"total"`
}

// AnalyticsReport es la vista historica calculada por pedido sobre 30 dias.
type AnalyticsReport struct {
	UserID              string           `json:"user_id"`
	Profile             ProfileSnapshot  `json:"profile"`
	MoodTrends          MoodTrends       `json:"mood_trends"`
	EmotionDistribution []EmotionShare   `json:"emotion_distribution"`
	ActivityStats       ActivityStats    `json:"activity_stats"`
	WellnessTrajectory  []WeeklyWellness `json:"wellness_trajectory"`
	Insights            []string         `json:"insights"`
	GeneratedAt         time.Time        `json:"generated_at"`
}
