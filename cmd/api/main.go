package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"echo-bloom/internal/config"
	"echo-bloom/internal/db"
	apihttp "echo-bloom/internal/http"
	"echo-bloom/internal/llm"
	"echo-bloom/internal/logging"
	"echo-bloom/internal/repository"
	"echo-bloom/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	store := repository.NewPgWellnessStore(pool)
	echoRepo := repository.NewPgEchoRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	activityRepo := repository.NewPgActivityRepository(pool)
	seedRepo := repository.NewPgSeedRepository(pool)

	llmClient, embedder, err := llm.NewClientFromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}
	if embedder == nil {
		logger.Warn("llm provider has no embeddings, seed search disabled", zap.String("provider", cfg.LLMProvider))
	}

	limiter := service.NewEchoRateLimiter(cfg.EchoRateWindow, cfg.EchoRateLimit)
	cache := service.NewMemoryAnalyticsCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory limiter and cache", zap.Error(err))
		} else {
			limiter = service.NewRedisEchoRateLimiter(redisClient, cfg.EchoRateWindow, cfg.EchoRateLimit, logger)
			cache = service.NewRedisAnalyticsCache(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, 0)
	if !jwtSvc.Enabled() {
		logger.Warn("jwt secret not configured, requests are anonymous")
	}

	generator := service.NewResponseGenerator(llmClient, cfg.LLMTimeout, logger)
	echoSvc := service.NewEchoService(
		logger,
		store,
		echoRepo,
		service.NewMoodClassifier(nil),
		service.NewSeedTypeClassifier(nil),
		generator,
		service.SuggestionSelector{Seed: cfg.SuggestionSeed},
	).WithRateLimiter(limiter).WithAnalyticsCache(cache)
	profileSvc := service.NewProfileService(profileRepo, echoRepo)
	analyticsSvc := service.NewAnalyticsService(logger, profileRepo, echoRepo, activityRepo, cache, cfg.AnalyticsCacheTTL)
	activitySvc := service.NewActivityService(logger, activityRepo, store, cache)
	seedSvc := service.NewSeedService(seedRepo, embedder)

	router := apihttp.NewRouter(
		logger,
		cfg.CORSOrigins,
		jwtSvc,
		apihttp.NewEchoHandler(logger, echoSvc, profileSvc),
		apihttp.NewAnalyticsHandler(logger, analyticsSvc),
		apihttp.NewActivityHandler(logger, activitySvc),
		apihttp.NewMiscHandler(logger, seedSvc, pool),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
