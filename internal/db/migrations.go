package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements se aplican en orden; todas son idempotentes.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS echoes (
		id           UUID PRIMARY KEY,
		user_id      TEXT NOT NULL,
		content      TEXT NOT NULL,
		ai_response  TEXT NOT NULL,
		mood_score   DOUBLE PRECISION NOT NULL,
		emotion_tags TEXT[] NOT NULL,
		seed_type    TEXT NOT NULL,
		growth_stage SMALLINT NOT NULL DEFAULT 1,
		is_shared    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS echoes_user_created_idx ON echoes (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS wellness_profiles (
		user_id             TEXT PRIMARY KEY,
		total_echoes        INTEGER NOT NULL DEFAULT 0,
		monthly_reflections INTEGER NOT NULL DEFAULT 0,
		gratitude_count     INTEGER NOT NULL DEFAULT 0,
		mood_average        DOUBLE PRECISION NOT NULL DEFAULT 0,
		current_streak      INTEGER NOT NULL DEFAULT 0,
		longest_streak      INTEGER NOT NULL DEFAULT 0,
		wellness_score      INTEGER NOT NULL DEFAULT 50,
		achievements        TEXT[] NOT NULL DEFAULT '{}',
		last_echo_at        TIMESTAMPTZ,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS breathing_sessions (
		id               UUID PRIMARY KEY,
		user_id          TEXT NOT NULL,
		cycles_completed INTEGER NOT NULL DEFAULT 0,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		technique        TEXT NOT NULL DEFAULT 'box_breathing',
		mood_before      DOUBLE PRECISION,
		mood_after       DOUBLE PRECISION,
		notes            TEXT,
		completed_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS breathing_user_completed_idx ON breathing_sessions (user_id, completed_at)`,
	`CREATE TABLE IF NOT EXISTS journal_entries (
		id              UUID PRIMARY KEY,
		user_id         TEXT NOT NULL,
		category        TEXT NOT NULL,
		prompts         JSONB NOT NULL DEFAULT '[]',
		responses       JSONB NOT NULL DEFAULT '{}',
		word_count      INTEGER NOT NULL DEFAULT 0,
		sentiment_score DOUBLE PRECISION,
		emotion_tags    TEXT[] NOT NULL DEFAULT '{}',
		completed_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS journal_user_completed_idx ON journal_entries (user_id, completed_at)`,
	`CREATE TABLE IF NOT EXISTS gratitude_entries (
		id           UUID PRIMARY KEY,
		user_id      TEXT NOT NULL,
		gratitudes   JSONB NOT NULL DEFAULT '[]',
		proud_moment TEXT,
		mood_score   DOUBLE PRECISION,
		themes       TEXT[] NOT NULL DEFAULT '{}',
		completed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS gratitude_user_completed_idx ON gratitude_entries (user_id, completed_at)`,
	`CREATE TABLE IF NOT EXISTS grounding_sessions (
		id                   UUID PRIMARY KEY,
		user_id              TEXT NOT NULL,
		see_items            TEXT[] NOT NULL DEFAULT '{}',
		touch_items          TEXT[] NOT NULL DEFAULT '{}',
		hear_items           TEXT[] NOT NULL DEFAULT '{}',
		smell_items          TEXT[] NOT NULL DEFAULT '{}',
		taste_items          TEXT[] NOT NULL DEFAULT '{}',
		duration_seconds     INTEGER NOT NULL DEFAULT 0,
		anxiety_before       DOUBLE PRECISION,
		anxiety_after        DOUBLE PRECISION,
		effectiveness_rating INTEGER,
		completed_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS grounding_user_completed_idx ON grounding_sessions (user_id, completed_at)`,
	`CREATE TABLE IF NOT EXISTS seeds (
		id           UUID PRIMARY KEY,
		content      TEXT NOT NULL,
		embedding    vector(1536),
		impact_count INTEGER NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
