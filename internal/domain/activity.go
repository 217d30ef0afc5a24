package domain

import "time"

// ActivityKind identifica los ejercicios guiados disponibles.
type ActivityKind string

const (
	ActivityBreathing ActivityKind = "breathing"
	ActivityJournal   ActivityKind = "journal"
	ActivityGratitude ActivityKind = "gratitude"
	ActivityGrounding ActivityKind = "grounding"
)

// ActivityKinds fija el orden de desempate en estadisticas e insights.
var ActivityKinds = []ActivityKind{ActivityBreathing, ActivityJournal, ActivityGratitude, ActivityGrounding}

type BreathingSession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CyclesCompleted int       `json:"cycles_completed"`
	DurationSeconds int       `json:"duration_seconds"`
	Technique       string    `json:"technique"` // box_breathing, 4-7-8, etc.
	MoodBefore      *float64  `json:"mood_before,omitempty"`
	MoodAfter       *float64  `json:"mood_after,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}

type JournalEntry struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	Category       string            `json:"category"`
	Prompts        []string          `json:"prompts"`
	Responses      map[string]string `json:"responses"`
	WordCount      int               `json:"word_count"`
	SentimentScore *float64          `json:"sentiment_score,omitempty"`
	EmotionTags    []string          `json:"emotion_tags"`
	CompletedAt    time.Time         `json:"completed_at"`
}

type GratitudeItem struct {
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

type GratitudeEntry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Gratitudes  []GratitudeItem `json:"gratitudes"`
	ProudMoment string          `json:"proud_moment,omitempty"`
	MoodScore   *float64        `json:"mood_score,omitempty"`
	Themes      []string        `json:"themes"`
	CompletedAt time.Time       `json:"completed_at"`
}

// GroundingSession registra un ejercicio 5-4-3-2-1.
type GroundingSession struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	SeeItems            []string  `json:"see_items"`
	TouchItems          []string  `json:"touch_items"`
	HearItems           []string  `json:"hear_items"`
	SmellItems          []string  `json:"smell_items"`
	TasteItems          []string  `json:"taste_items"`
	DurationSeconds     int       `json:"duration_seconds"`
	AnxietyBefore       *float64  `json:"anxiety_before,omitempty"` // Escala 0-10
	AnxietyAfter        *float64  `json:"anxiety_after,omitempty"`
	EffectivenessRating *int      `json:"effectiveness_rating,omitempty"` // 1-5
	CompletedAt         time.Time `json:"completed_at"`
}

// ActivityCounts agrupa conteos por tipo de actividad.
type ActivityCounts map[ActivityKind]int

// Total suma los conteos de todos los tipos conocidos.
func (c ActivityCounts) Total() int {
	total := 0
	for _, kind := range ActivityKinds {
		total += c[kind]
	}
	return total
}
