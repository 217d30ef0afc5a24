package service

import (
	"context"
	"sync"
	"time"
)

const (
	defaultEchoRateWindow = time.Minute
	defaultEchoRateMax    = 1
)

// EchoRateLimiter decide si un usuario puede enviar otro echo dentro de la ventana actual.
type EchoRateLimiter interface {
	Allow(ctx context.Context, userID string) bool
}

type memoryEchoRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
}

// NewEchoRateLimiter crea un limitador en memoria de ventana deslizante, valido para una sola instancia.
func NewEchoRateLimiter(window time.Duration, max int) EchoRateLimiter {
	window, max = normalizeEchoRate(window, max)
	return &memoryEchoRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *memoryEchoRateLimiter) Allow(_ context.Context, userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	entries := l.hits[userID]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[userID] = kept
		return false
	}
	l.hits[userID] = append(kept, now)
	return true
}

func normalizeEchoRate(window time.Duration, max int) (time.Duration, int) {
	if window <= 0 {
		window = defaultEchoRateWindow
	}
	if max <= 0 {
		max = defaultEchoRateMax
	}
	return window, max
}
