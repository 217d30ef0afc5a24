package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"echo-bloom/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.WellnessProfile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.WellnessProfile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM wellness_profiles
		WHERE user_id = $1
	`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WellnessProfile{}, err
	}
	return profile, err
}
