package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"echo-bloom/internal/domain"
)

type EchoRepository interface {
	// ListByUser devuelve los echoes mas recientes primero.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Echo, error)
	// ListSince devuelve los echoes creados desde since, en orden cronologico.
	ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Echo, error)
}

type PgEchoRepository struct {
	pool *pgxpool.Pool
}

func NewPgEchoRepository(pool *pgxpool.Pool) *PgEchoRepository {
	return &PgEchoRepository{pool: pool}
}

const echoColumns = `id, user_id, content, ai_response, mood_score, emotion_tags, seed_type, growth_stage, is_shared, created_at, updated_at`

func (r *PgEchoRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Echo, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT ` + echoColumns + `
		FROM echoes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEchoes(rows)
}

func (r *PgEchoRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.Echo, error) {
	const query = `
		SELECT ` + echoColumns + `
		FROM echoes
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEchoes(rows)
}

func scanEchoes(rows pgxRows) ([]domain.Echo, error) {
	var echoes []domain.Echo
	for rows.Next() {
		var e domain.Echo
		var seedType string
		var stage int
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Content,
			&e.Response,
			&e.MoodScore,
			&e.EmotionTags,
			&seedType,
			&stage,
			&e.IsShared,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.SeedType = domain.SeedType(seedType)
		e.GrowthStage = domain.GrowthStage(stage)
		echoes = append(echoes, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return echoes, nil
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
