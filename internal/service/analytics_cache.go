package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"echo-bloom/internal/domain"
)

// AnalyticsCache guarda reportes recientes por usuario. Un echo nuevo los invalida.
type AnalyticsCache interface {
	Get(ctx context.Context, userID string) (domain.AnalyticsReport, bool, error)
	Set(ctx context.Context, userID string, report domain.AnalyticsReport, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}

type cachedReport struct {
	report    domain.AnalyticsReport
	expiresAt time.Time
}

type memoryAnalyticsCache struct {
	mu    sync.Mutex
	items map[string]cachedReport
}

func NewMemoryAnalyticsCache() AnalyticsCache {
	return &memoryAnalyticsCache{
		items: make(map[string]cachedReport),
	}
}

func (c *memoryAnalyticsCache) Get(_ context.Context, userID string) (domain.AnalyticsReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[userID]
	if !ok {
		return domain.AnalyticsReport{}, false, nil
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(c.items, userID)
		return domain.AnalyticsReport{}, false, nil
	}
	return item.report, true, nil
}

func (c *memoryAnalyticsCache) Set(_ context.Context, userID string, report domain.AnalyticsReport, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(userID) == "" || ttl <= 0 {
		return nil
	}
	c.items[userID] = cachedReport{report: report, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

func (c *memoryAnalyticsCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisAnalyticsCache struct {
	client redisKV
	prefix string
}

func NewRedisAnalyticsCache(client *redis.Client) AnalyticsCache {
	if client == nil {
		return nil
	}
	return &redisAnalyticsCache{
		client: client,
		prefix: "analytics:report:",
	}
}

func (c *redisAnalyticsCache) Get(ctx context.Context, userID string) (domain.AnalyticsReport, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.AnalyticsReport{}, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AnalyticsReport{}, false, nil
	}
	if err != nil {
		return domain.AnalyticsReport{}, false, err
	}
	var report domain.AnalyticsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.AnalyticsReport{}, false, err
	}
	return report, true, nil
}

func (c *redisAnalyticsCache) Set(ctx context.Context, userID string, report domain.AnalyticsReport, ttl time.Duration) error {
	if strings.TrimSpace(userID) == "" || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+userID, payload, ttl).Err()
}

func (c *redisAnalyticsCache) Invalidate(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.prefix+userID).Err()
}
