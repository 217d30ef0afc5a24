package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/llm"
	"echo-bloom/internal/repository"
)

const defaultSeedSearchLimit = 10

var (
	ErrSeedSearchUnavailable = errors.New("seed search unavailable")
	ErrSeedInvalidInput      = errors.New("seed invalid input")
)

// SeedService indexa y busca consejos por similitud semantica.
type SeedService struct {
	repo     repository.SeedRepository
	embedder llm.Embedder
}

func NewSeedService(repo repository.SeedRepository, embedder llm.Embedder) *SeedService {
	return &SeedService{repo: repo, embedder: embedder}
}

// Plant embebe el contenido y lo guarda como semilla buscable.
func (s *SeedService) Plant(ctx context.Context, content string) (domain.Seed, error) {
	if s == nil || s.repo == nil || s.embedder == nil {
		return domain.Seed{}, ErrSeedSearchUnavailable
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Seed{}, ErrSeedInvalidInput
	}
	vec, err := s.embedder.CreateEmbedding(ctx, content)
	if err != nil {
		return domain.Seed{}, fmt.Errorf("embed seed: %w", err)
	}
	seed := domain.Seed{
		ID:        uuid.New(),
		Content:   content,
		Embedding: pgvector.NewVector(vec),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, seed); err != nil {
		return domain.Seed{}, fmt.Errorf("create seed: %w", err)
	}
	return seed, nil
}

func (s *SeedService) Search(ctx context.Context, query string, limit int) ([]domain.ScoredSeed, error) {
	if s == nil || s.repo == nil || s.embedder == nil {
		return nil, ErrSeedSearchUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSeedInvalidInput
	}
	if limit <= 0 {
		limit = defaultSeedSearchLimit
	}
	vec, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.repo.SearchSimilar(ctx, pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, fmt.Errorf("search seeds: %w", err)
	}
	if results == nil {
		results = []domain.ScoredSeed{}
	}
	return results, nil
}
