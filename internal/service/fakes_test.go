package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/repository"
)

// memoryWellnessStore emula la transaccion: serializa todo fn y solo aplica las escrituras si fn no falla.
type memoryWellnessStore struct {
	mu        sync.Mutex
	profiles  map[string]domain.WellnessProfile
	echoes    []domain.Echo
	gratitude []domain.GratitudeEntry

	insertErr       error
	saveErr         error
	addGratitudeErr error
	txCalls         int
}

func newMemoryWellnessStore() *memoryWellnessStore {
	return &memoryWellnessStore{profiles: make(map[string]domain.WellnessProfile)}
}

func (s *memoryWellnessStore) WithinTx(ctx context.Context, fn func(tx repository.WellnessTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCalls++
	tx := &memoryWellnessTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	s.echoes = append(s.echoes, tx.echoes...)
	s.gratitude = append(s.gratitude, tx.gratitude...)
	for _, p := range tx.profiles {
		s.profiles[p.UserID] = p
	}
	for userID, n := range tx.gratitudeAdds {
		if p, ok := s.profiles[userID]; ok {
			p.GratitudeCount += n
			s.profiles[userID] = p
		}
	}
	return nil
}

func (s *memoryWellnessStore) profile(userID string) (domain.WellnessProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	return p, ok
}

func (s *memoryWellnessStore) gratitudeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.gratitude)
}

func (s *memoryWellnessStore) echoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.echoes)
}

type memoryWellnessTx struct {
	store         *memoryWellnessStore
	echoes        []domain.Echo
	profiles      []domain.WellnessProfile
	gratitude     []domain.GratitudeEntry
	gratitudeAdds map[string]int
}

func (t *memoryWellnessTx) LockProfile(_ context.Context, userID string) (*domain.WellnessProfile, error) {
	p, ok := t.store.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := p.Clone()
	return &clone, nil
}

func (t *memoryWellnessTx) InsertEcho(_ context.Context, echo domain.Echo) error {
	if t.store.insertErr != nil {
		return t.store.insertErr
	}
	t.echoes = append(t.echoes, echo)
	return nil
}

func (t *memoryWellnessTx) SaveProfile(_ context.Context, profile domain.WellnessProfile) error {
	if t.store.saveErr != nil {
		return t.store.saveErr
	}
	t.profiles = append(t.profiles, profile)
	return nil
}

func (t *memoryWellnessTx) InsertGratitude(_ context.Context, entry domain.GratitudeEntry) error {
	if t.store.insertErr != nil {
		return t.store.insertErr
	}
	t.gratitude = append(t.gratitude, entry)
	return nil
}

func (t *memoryWellnessTx) AddGratitude(_ context.Context, userID string, n int) error {
	if t.store.addGratitudeErr != nil {
		return t.store.addGratitudeErr
	}
	if t.gratitudeAdds == nil {
		t.gratitudeAdds = make(map[string]int)
	}
	t.gratitudeAdds[userID] += n
	return nil
}

type mockEchoRepo struct {
	echoes    []domain.Echo
	err       error
	lastLimit int
	lastSince time.Time
}

func (m *mockEchoRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.Echo, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Echo
	for _, e := range m.echoes {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockEchoRepo) ListSince(_ context.Context, userID string, since time.Time) ([]domain.Echo, error) {
	m.lastSince = since
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Echo
	for _, e := range m.echoes {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type mockWellnessProfileRepo struct {
	profiles map[string]domain.WellnessProfile
	err      error
	getCalls int
}

func (m *mockWellnessProfileRepo) GetByUserID(_ context.Context, userID string) (domain.WellnessProfile, error) {
	m.getCalls++
	if m.err != nil {
		return domain.WellnessProfile{}, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return domain.WellnessProfile{}, pgx.ErrNoRows
	}
	return p, nil
}

type countKey struct {
	kind   domain.ActivityKind
	recent bool
}

type mockActivityRepo struct {
	counts    map[countKey]int
	countErr  error
	createErr error
	sinces    []time.Time

	breathing []domain.BreathingSession
	journals  []domain.JournalEntry
	gratitude []domain.GratitudeEntry
	grounding []domain.GroundingSession

	lastCategory string
	lastLimit    int
}

func (m *mockActivityRepo) CreateBreathing(_ context.Context, s domain.BreathingSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.breathing = append(m.breathing, s)
	return nil
}

func (m *mockActivityRepo) CreateJournal(_ context.Context, e domain.JournalEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.journals = append(m.journals, e)
	return nil
}

func (m *mockActivityRepo) CreateGrounding(_ context.Context, s domain.GroundingSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.grounding = append(m.grounding, s)
	return nil
}

func (m *mockActivityRepo) ListBreathing(_ context.Context, _ string, limit int) ([]domain.BreathingSession, error) {
	m.lastLimit = limit
	return m.breathing, nil
}

func (m *mockActivityRepo) ListJournal(_ context.Context, _ string, category string, limit int) ([]domain.JournalEntry, error) {
	m.lastCategory = category
	m.lastLimit = limit
	return m.journals, nil
}

func (m *mockActivityRepo) ListGratitude(_ context.Context, _ string, limit int) ([]domain.GratitudeEntry, error) {
	m.lastLimit = limit
	return m.gratitude, nil
}

func (m *mockActivityRepo) ListGrounding(_ context.Context, _ string, limit int) ([]domain.GroundingSession, error) {
	m.lastLimit = limit
	return m.grounding, nil
}

func (m *mockActivityRepo) Count(_ context.Context, kind domain.ActivityKind, _ string, category string, since time.Time) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.sinces = append(m.sinces, since)
	m.lastCategory = category
	return m.counts[countKey{kind: kind, recent: !since.IsZero()}], nil
}

type mockSeedRepo struct {
	created []domain.Seed
	results []domain.ScoredSeed
	lastK   int
	lastVec pgvector.Vector
	err     error
}

func (m *mockSeedRepo) Create(_ context.Context, seed domain.Seed) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, seed)
	return nil
}

func (m *mockSeedRepo) SearchSimilar(_ context.Context, vec pgvector.Vector, k int) ([]domain.ScoredSeed, error) {
	m.lastVec = vec
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

var errStorage = errors.New("storage down")
