package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	echoRateKeyPrefix = "echo:rate:"
	echoRateTimeout   = 500 * time.Millisecond
)

// echoWindowScript cuenta envios por usuario en una ventana fija.
// Una clave sin TTL (p. ej. si el PEXPIRE anterior fallo) recibe la ventana de nuevo.
const echoWindowScript = `
local current = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// redisEchoRateLimiter comparte el conteo entre instancias de la API.
// Si redis no responde deja pasar el echo y lo registra.
type redisEchoRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	logger *zap.Logger
}

func NewRedisEchoRateLimiter(client *redis.Client, window time.Duration, max int, logger *zap.Logger) EchoRateLimiter {
	if client == nil {
		return nil
	}
	return newRedisEchoRateLimiter(client, window, max, logger)
}

func newRedisEchoRateLimiter(client redisEvaler, window time.Duration, max int, logger *zap.Logger) *redisEchoRateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	window, max = normalizeEchoRate(window, max)
	return &redisEchoRateLimiter{client: client, window: window, max: max, logger: logger}
}

func echoRateKey(userID string) string {
	return echoRateKeyPrefix + userID
}

func (l *redisEchoRateLimiter) Allow(ctx context.Context, userID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, echoRateTimeout)
	defer cancel()

	count, err := l.client.Eval(ctx, echoWindowScript, []string{echoRateKey(userID)}, l.window.Milliseconds()).Int()
	if err != nil {
		l.logger.Warn("echo rate limit check failed, allowing", zap.String("user_id", userID), zap.Error(err))
		return true
	}
	if count > l.max {
		l.logger.Debug("echo rate limited", zap.String("user_id", userID), zap.Int("count", count), zap.Int("max", l.max))
		return false
	}
	return true
}
