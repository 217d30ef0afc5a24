package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"echo-bloom/internal/domain"
)

// WellnessTx expone las escrituras que tocan el perfil junto con su registro de origen.
type WellnessTx interface {
	// LockProfile serializa escrituras del mismo usuario y devuelve el perfil actual (nil si no existe).
	LockProfile(ctx context.Context, userID string) (*domain.WellnessProfile, error)
	InsertEcho(ctx context.Context, echo domain.Echo) error
	SaveProfile(ctx context.Context, profile domain.WellnessProfile) error
	InsertGratitude(ctx context.Context, entry domain.GratitudeEntry) error
	// AddGratitude suma n al contador si el perfil existe; sin perfil no hace nada.
	AddGratitude(ctx context.Context, userID string, n int) error
}

// WellnessStore ejecuta fn dentro de una transaccion: todo se confirma o nada.
type WellnessStore interface {
	WithinTx(ctx context.Context, fn func(tx WellnessTx) error) error
}

type PgWellnessStore struct {
	pool *pgxpool.Pool
}

func NewPgWellnessStore(pool *pgxpool.Pool) *PgWellnessStore {
	return &PgWellnessStore{pool: pool}
}

func (s *PgWellnessStore) WithinTx(ctx context.Context, fn func(tx WellnessTx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgWellnessTx{tx: tx})
	})
}

type pgWellnessTx struct {
	tx pgx.Tx
}

func (t *pgWellnessTx) LockProfile(ctx context.Context, userID string) (*domain.WellnessProfile, error) {
	// El lock consultivo cubre tambien el primer echo, cuando todavia no hay fila que bloquear.
	if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + profileColumns + `
		FROM wellness_profiles
		WHERE user_id = $1
		FOR UPDATE
	`
	profile, err := scanProfile(t.tx.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (t *pgWellnessTx) InsertEcho(ctx context.Context, echo domain.Echo) error {
	const query = `
		INSERT INTO echoes (id, user_id, content, ai_response, mood_score, emotion_tags, seed_type, growth_stage, is_shared, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := t.tx.Exec(ctx, query,
		echo.ID,
		echo.UserID,
		echo.Content,
		echo.Response,
		echo.MoodScore,
		echo.EmotionTags,
		string(echo.SeedType),
		int(echo.GrowthStage),
		echo.IsShared,
		echo.CreatedAt,
		echo.UpdatedAt,
	)
	return err
}

func (t *pgWellnessTx) SaveProfile(ctx context.Context, p domain.WellnessProfile) error {
	const query = `
		INSERT INTO wellness_profiles (
			user_id, total_echoes, monthly_reflections, gratitude_count, mood_average, current_streak, longest_streak, wellness_score, achievements, last_echo_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			total_echoes = EXCLUDED.total_echoes,
			monthly_reflections = EXCLUDED.monthly_reflections,
			gratitude_count = EXCLUDED.gratitude_count,
			mood_average = EXCLUDED.mood_average,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			wellness_score = EXCLUDED.wellness_score,
			achievements = EXCLUDED.achievements,
			last_echo_at = EXCLUDED.last_echo_at,
			updated_at = EXCLUDED.updated_at
	`
	achievements := p.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	var lastEcho interface{}
	if !p.LastEchoAt.IsZero() {
		lastEcho = p.LastEchoAt
	}
	_, err := t.tx.Exec(ctx, query,
		p.UserID,
		p.TotalEchoes,
		p.MonthlyReflections,
		p.GratitudeCount,
		p.MoodAverage,
		p.CurrentStreak,
		p.LongestStreak,
		p.WellnessScore,
		achievements,
		lastEcho,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (t *pgWellnessTx) InsertGratitude(ctx context.Context, e domain.GratitudeEntry) error {
	const query = `
		INSERT INTO gratitude_entries (id, user_id, gratitudes, proud_moment, mood_score, themes, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	items := e.Gratitudes
	if items == nil {
		items = []domain.GratitudeItem{}
	}
	gratitudes, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal gratitudes: %w", err)
	}
	var proud interface{}
	if e.ProudMoment != "" {
		proud = e.ProudMoment
	}
	_, err = t.tx.Exec(ctx, query,
		e.ID, e.UserID, gratitudes, proud, e.MoodScore, nonNilStrings(e.Themes), e.CompletedAt,
	)
	return err
}

func (t *pgWellnessTx) AddGratitude(ctx context.Context, userID string, n int) error {
	const query = `
		UPDATE wellness_profiles
		SET gratitude_count = gratitude_count + $2, updated_at = $3
		WHERE user_id = $1
	`
	_, err := t.tx.Exec(ctx, query, userID, n, time.Now().UTC())
	return err
}

const profileColumns = `user_id, total_echoes, monthly_reflections, gratitude_count, mood_average, current_streak, longest_streak, wellness_score, achievements, last_echo_at, created_at, updated_at`

func scanProfile(row pgx.Row) (domain.WellnessProfile, error) {
	var p domain.WellnessProfile
	var lastEcho *time.Time
	err := row.Scan(
		&p.UserID,
		&p.TotalEchoes,
		&p.MonthlyReflections,
		&p.GratitudeCount,
		&p.MoodAverage,
		&p.CurrentStreak,
		&p.LongestStreak,
		&p.WellnessScore,
		&p.Achievements,
		&lastEcho,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.WellnessProfile{}, err
	}
	if lastEcho != nil {
		p.LastEchoAt = lastEcho.UTC()
	}
	return p, nil
}
