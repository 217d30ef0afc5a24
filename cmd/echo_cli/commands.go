package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"echo-bloom/internal/config"
	"echo-bloom/internal/db"
	"echo-bloom/internal/domain"
	"echo-bloom/internal/llm"
	"echo-bloom/internal/logging"
	"echo-bloom/internal/repository"
	"echo-bloom/internal/service"
)

var errUserRequired = errors.New("--user is required")

// classification es la salida de classify: todo lo que el pipeline deriva del texto sin tocar la base.
type classification struct {
	MoodScore   float64            `json:"mood_score"`
	EmotionTags []string           `json:"emotion_tags"`
	SeedType    domain.SeedType    `json:"seed_type"`
	GrowthStage domain.GrowthStage `json:"growth_stage"`
	StageName   string             `json:"stage_name"`
	Suggestion  string             `json:"suggestion"`
}

func classifyText(text string, seed uint64) classification {
	mood := service.NewMoodClassifier(nil).ClassifyMood(text)
	stage := service.GrowthStageFor(mood.Score)
	return classification{
		MoodScore:   mood.Score,
		EmotionTags: mood.Tags,
		SeedType:    service.NewSeedTypeClassifier(nil).ClassifySeedType(text),
		GrowthStage: stage,
		StageName:   stage.String(),
		Suggestion:  service.SuggestionSelector{Seed: seed}.SelectSuggestion(mood.Tags, mood.Score),
	}
}

func newClassifyCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Clasifica un texto offline (emocion, tipo de semilla, estadio, sugerencia)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), classifyText(strings.Join(args, " "), seed))
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Semilla del selector de sugerencias")
	return cmd
}

func newSubmitCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "submit [text]",
		Short: "Envia un echo por el pipeline completo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(userID) == "" {
				return errUserRequired
			}
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			result, err := env.echoService().SubmitEcho(cmd.Context(), service.SubmitEchoInput{
				UserID: userID,
				Text:   strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id")
	return cmd
}

func newAnalyticsCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Calcula el reporte de analytics de un usuario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(userID) == "" {
				return errUserRequired
			}
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			svc := service.NewAnalyticsService(
				env.logger,
				repository.NewPgProfileRepository(env.pool),
				repository.NewPgEchoRepository(env.pool),
				repository.NewPgActivityRepository(env.pool),
				nil,
				0,
			)
			report, err := svc.GetAnalytics(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id")
	return cmd
}

func newPlantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plant [content]",
		Short: "Indexa un consejo como semilla buscable",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			seed, err := service.NewSeedService(repository.NewPgSeedRepository(env.pool), env.embedder).
				Plant(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), seed)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un access token de desarrollo firmado con JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(userID) == "" {
				return errUserRequired
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			token, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, ttl).GenerateAccessToken(userID)
			if err != nil {
				return fmt.Errorf("issue token (is JWT_SECRET set?): %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

// cliEnv agrupa las conexiones que necesitan los comandos con base de datos.
type cliEnv struct {
	cfg      *config.Config
	logger   *zap.Logger
	pool     *pgxpool.Pool
	llm      llm.LLMClient
	embedder llm.Embedder
}

func openEnv(ctx context.Context) (*cliEnv, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	client, embedder, err := llm.NewClientFromConfig(cfg, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &cliEnv{cfg: cfg, logger: logger, pool: pool, llm: client, embedder: embedder}, nil
}

func (e *cliEnv) echoService() *service.EchoService {
	return service.NewEchoService(
		e.logger,
		repository.NewPgWellnessStore(e.pool),
		repository.NewPgEchoRepository(e.pool),
		nil,
		nil,
		service.NewResponseGenerator(e.llm, e.cfg.LLMTimeout, e.logger),
		service.SuggestionSelector{Seed: e.cfg.SuggestionSeed},
	)
}

func (e *cliEnv) Close() {
	e.pool.Close()
	_ = e.logger.Sync()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
