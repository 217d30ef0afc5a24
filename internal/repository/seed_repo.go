package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"echo-bloom/internal/domain"
)

type SeedRepository interface {
	Create(ctx context.Context, seed domain.Seed) error
	SearchSimilar(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.ScoredSeed, error)
}

type PgSeedRepository struct {
	pool *pgxpool.Pool
}

func NewPgSeedRepository(pool *pgxpool.Pool) *PgSeedRepository {
	return &PgSeedRepository{pool: pool}
}

func (r *PgSeedRepository) Create(ctx context.Context, seed domain.Seed) error {
	const query = `
		INSERT INTO seeds (id, content, embedding, impact_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		seed.ID,
		seed.Content,
		seed.Embedding,
		seed.ImpactCount,
		seed.CreatedAt,
	)
	return err
}

func (r *PgSeedRepository) SearchSimilar(ctx context.Context, queryEmbedding pgvector.Vector, k int) ([]domain.ScoredSeed, error) {
	if k <= 0 {
		k = 10
	}
	const query = `
		SELECT id, content, embedding, impact_count, created_at, embedding <=> $1 AS distance
		FROM seeds
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScoredSeed
	for rows.Next() {
		var s domain.ScoredSeed
		if err := rows.Scan(
			&s.Seed.ID,
			&s.Seed.Content,
			&s.Seed.Embedding,
			&s.Seed.ImpactCount,
			&s.Seed.CreatedAt,
			&s.Distance,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
