package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"echo-bloom/internal/domain"
)

// ActivityRepository guarda y lista actividades; gratitud se escribe por WellnessTx porque mueve el perfil.
type ActivityRepository interface {
	CreateBreathing(ctx context.Context, s domain.BreathingSession) error
	CreateJournal(ctx context.Context, e domain.JournalEntry) error
	CreateGrounding(ctx context.Context, s domain.GroundingSession) error

	ListBreathing(ctx context.Context, userID string, limit int) ([]domain.BreathingSession, error)
	ListJournal(ctx context.Context, userID, category string, limit int) ([]domain.JournalEntry, error)
	ListGratitude(ctx context.Context, userID string, limit int) ([]domain.GratitudeEntry, error)
	ListGrounding(ctx context.Context, userID string, limit int) ([]domain.GroundingSession, error)

	// Count cuenta actividades de un tipo completadas desde since (zero = todas).
	// category solo aplica a journal.
	Count(ctx context.Context, kind domain.ActivityKind, userID, category string, since time.Time) (int, error)
}

type PgActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPgActivityRepository(pool *pgxpool.Pool) *PgActivityRepository {
	return &PgActivityRepository{pool: pool}
}

var activityTables = map[domain.ActivityKind]string{
	domain.ActivityBreathing: "breathing_sessions",
	domain.ActivityJournal:   "journal_entries",
	domain.ActivityGratitude: "gratitude_entries",
	domain.ActivityGrounding: "grounding_sessions",
}

func (r *PgActivityRepository) CreateBreathing(ctx context.Context, s domain.BreathingSession) error {
	const query = `
		INSERT INTO breathing_sessions (id, user_id, cycles_completed, duration_seconds, technique, mood_before, mood_after, notes, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	var notes interface{}
	if s.Notes != "" {
		notes = s.Notes
	}
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.UserID, s.CyclesCompleted, s.DurationSeconds, s.Technique,
		s.MoodBefore, s.MoodAfter, notes, s.CompletedAt,
	)
	return err
}

func (r *PgActivityRepository) CreateJournal(ctx context.Context, e domain.JournalEntry) error {
	const query = `
		INSERT INTO journal_entries (id, user_id, category, prompts, responses, word_count, sentiment_score, emotion_tags, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	prompts, err := json.Marshal(nonNilStrings(e.Prompts))
	if err != nil {
		return fmt.Errorf("marshal prompts: %w", err)
	}
	responses := e.Responses
	if responses == nil {
		responses = map[string]string{}
	}
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	_, err = r.pool.Exec(ctx, query,
		e.ID, e.UserID, e.Category, prompts, responsesJSON, e.WordCount,
		e.SentimentScore, nonNilStrings(e.EmotionTags), e.CompletedAt,
	)
	return err
}

func (r *PgActivityRepository) CreateGrounding(ctx context.Context, s domain.GroundingSession) error {
	const query = `
		INSERT INTO grounding_sessions (
			id, user_id, see_items, touch_items, hear_items, smell_items, taste_items, duration_seconds, anxiety_before, anxiety_after, effectiveness_rating, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.UserID,
		nonNilStrings(s.SeeItems), nonNilStrings(s.TouchItems), nonNilStrings(s.HearItems),
		nonNilStrings(s.SmellItems), nonNilStrings(s.TasteItems),
		s.DurationSeconds, s.AnxietyBefore, s.AnxietyAfter, s.EffectivenessRating, s.CompletedAt,
	)
	return err
}

func (r *PgActivityRepository) ListBreathing(ctx context.Context, userID string, limit int) ([]domain.BreathingSession, error) {
	const query = `
		SELECT id, user_id, cycles_completed, duration_seconds, technique, mood_before, mood_after, COALESCE(notes, ''), completed_at
		FROM breathing_sessions
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BreathingSession
	for rows.Next() {
		var s domain.BreathingSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.CyclesCompleted, &s.DurationSeconds, &s.Technique, &s.MoodBefore, &s.MoodAfter, &s.Notes, &s.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgActivityRepository) ListJournal(ctx context.Context, userID, category string, limit int) ([]domain.JournalEntry, error) {
	query := `
		SELECT id, user_id, category, prompts, responses, word_count, sentiment_score, emotion_tags, completed_at
		FROM journal_entries
		WHERE user_id = $1`
	args := []interface{}{userID}
	if category != "" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += fmt.Sprintf(` ORDER BY completed_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, normalizeLimit(limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var prompts, responses []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &prompts, &responses, &e.WordCount, &e.SentimentScore, &e.EmotionTags, &e.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(prompts, &e.Prompts); err != nil {
			return nil, fmt.Errorf("unmarshal prompts: %w", err)
		}
		if err := json.Unmarshal(responses, &e.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PgActivityRepository) ListGratitude(ctx context.Context, userID string, limit int) ([]domain.GratitudeEntry, error) {
	const query = `
		SELECT id, user_id, gratitudes, COALESCE(proud_moment, ''), mood_score, themes, completed_at
		FROM gratitude_entries
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GratitudeEntry
	for rows.Next() {
		var e domain.GratitudeEntry
		var gratitudes []byte
		if err := rows.Scan(&e.ID, &e.UserID, &gratitudes, &e.ProudMoment, &e.MoodScore, &e.Themes, &e.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(gratitudes, &e.Gratitudes); err != nil {
			return nil, fmt.Errorf("unmarshal gratitudes: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PgActivityRepository) ListGrounding(ctx context.Context, userID string, limit int) ([]domain.GroundingSession, error) {
	const query = `
		SELECT id, user_id, see_items, touch_items, hear_items, smell_items, taste_items, duration_seconds, anxiety_before, anxiety_after, effectiveness_rating, completed_at
		FROM grounding_sessions
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GroundingSession
	for rows.Next() {
		var s domain.GroundingSession
		if err := rows.Scan(
			&s.ID, &s.UserID,
			&s.SeeItems, &s.TouchItems, &s.HearItems, &s.SmellItems, &s.TasteItems,
			&s.DurationSeconds, &s.AnxietyBefore, &s.AnxietyAfter, &s.EffectivenessRating, &s.CompletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgActivityRepository) Count(ctx context.Context, kind domain.ActivityKind, userID, category string, since time.Time) (int, error) {
	table, ok := activityTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown activity kind %q", kind)
	}
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE user_id = $1`
	args := []interface{}{userID}
	if kind == domain.ActivityJournal && category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if !since.IsZero() {
		args = append(args, since)
		query += fmt.Sprintf(` AND completed_at >= $%d`, len(args))
	}
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
