package domain

import "time"

// SeedType clasifica la naturaleza retorica de una reflexion.
type SeedType string

const (
	SeedTypeReflection SeedType = "reflection"
	SeedTypeGratitude  SeedType = "gratitude"
	SeedTypeConcern    SeedType = "concern"
	SeedTypeJoy        SeedType = "joy"
	SeedTypeGrowth     SeedType = "growth"
)

// GrowthStage es el nivel ordinal de visualizacion del jardin.
type GrowthStage int

const (
	GrowthStageSeed   GrowthStage = 1
	GrowthStageSprout GrowthStage = 2
	GrowthStageBloom  GrowthStage = 3
	GrowthStageFlower GrowthStage = 4 // Existe en el modelo pero ninguna regla actual lo asigna.
)

// String devuelve el nombre del estadio (seed, sprout, bloom, flower).
func (g GrowthStage) String() string {
	switch g {
	case GrowthStageSeed:
		return "seed"
	case GrowthStageSprout:
		return "sprout"
	case GrowthStageBloom:
		return "bloom"
	case GrowthStageFlower:
		return "flower"
	default:
		return "unknown"
	}
}

// NeutralEmotion es la etiqueta usada cuando ninguna palabra clave coincide.
const NeutralEmotion = "neutral"

// Echo es una reflexion del usuario junto con su senal emocional derivada.
// Se crea una sola vez por envio y no se modifica despues.
type Echo struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Content     string      `json:"content"`
	Response    string      `json:"ai_response"`
	MoodScore   float64     `json:"mood_score"`   // -1 (negativo) a 1 (positivo)
	EmotionTags []string    `json:"emotion_tags"` // Maximo 3, nunca vacio
	SeedType    SeedType    `json:"seed_type"`
	GrowthStage GrowthStage `json:"growth_stage"`
	IsShared    bool        `json:"is_shared"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
