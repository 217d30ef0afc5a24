package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// Seed es un fragmento de consejo indexado por embedding para busqueda semantica.
type Seed struct {
	ID          uuid.UUID       `json:"id"`
	Content     string          `json:"content"`
	Embedding   pgvector.Vector `json:"-"`
	ImpactCount int             `json:"impact_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ScoredSeed acompana una semilla con su distancia coseno a la consulta.
type ScoredSeed struct {
	Seed     Seed    `json:"seed"`
	Distance float64 `json:"distance"`
}
