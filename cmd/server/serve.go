package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apihttp "github.com/cybersoft/talentmatch/api/http"
	"github.com/cybersoft/talentmatch/api/http/handlers"
	"github.com/cybersoft/talentmatch/api/http/middleware"
	_ "github.com/cybersoft/talentmatch/docs"
	"github.com/cybersoft/talentmatch/pkg/analysis"
	"github.com/cybersoft/talentmatch/pkg/candidate"
	"github.com/cybersoft/talentmatch/pkg/config"
	"github.com/cybersoft/talentmatch/pkg/health"
	healthpg "github.com/cybersoft/talentmatch/pkg/health/checkers"
	"github.com/cybersoft/talentmatch/pkg/job"
	"github.com/cybersoft/talentmatch/pkg/llm"
	"github.com/cybersoft/talentmatch/pkg/llm/gemini"
	"github.com/cybersoft/talentmatch/pkg/llm/openrouter"
	"github.com/cybersoft/talentmatch/pkg/logger"
	"github.com/cybersoft/talentmatch/pkg/matching"
	"github.com/cybersoft/talentmatch/pkg/metrics"
	pgrepo "github.com/cybersoft/talentmatch/pkg/repository/postgres"
	"github.com/cybersoft/talentmatch/pkg/resume"
	"github.com/cybersoft/talentmatch/pkg/security/jwt"
	"github.com/cybersoft/talentmatch/pkg/storage/postgres"
	"github.com/cybersoft/talentmatch/pkg/upload"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	// the bare binary behaves like "serve"
	rootCmd.RunE = serveCmd.RunE
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.Log.JSON || logJSON, cfg.Log.Debug || debug)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Order matters: matching references both other tables.
	candidateRepo, err := pgrepo.NewCandidateRepository(ctx, pool, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("init candidate repo: %w", err)
	}
	jobRepo, err := pgrepo.NewJobRepository(ctx, pool, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("init job repo: %w", err)
	}
	matchingRepo, err := pgrepo.NewMatchingRepository(ctx, pool, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("init matching repo: %w", err)
	}

	model, err := newChatModel(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	files, err := newFileStore(ctx, cfg.Upload)
	if err != nil {
		return err
	}

	m := metrics.New()
	analyzer := analysis.NewService(model, cfg.AnalyzeTimeout, log.Named("analysis"), m)

	h := apihttp.Handlers{
		Health: handlers.NewHealthHandler(health.NewService(healthpg.NewPostgresChecker(pool)), cfg.AppName),
		Candidate: handlers.NewCandidateHandler(
			candidate.NewService(candidateRepo, resume.NewParser(), files, analyzer), log, cfg.Upload.MaxBytes),
		Job:      handlers.NewJobHandler(job.NewService(jobRepo, analyzer), log),
		Matching: handlers.NewMatchingHandler(matching.NewService(matchingRepo, analyzer), log),
	}

	var guard fiber.Handler
	if cfg.JWT.Secret != "" {
		guard = jwt.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer)
	} else {
		log.Warn("JWT_SECRET is empty, resource routes are not protected")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ErrorHandler: apihttp.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(log.Named("http")))
	app.Use(m.Middleware())

	apihttp.Register(app, h, guard)
	app.Get("/metrics", m.Handler())
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func newChatModel(ctx context.Context, cfg config.LLMConfig) (llm.ChatModel, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := gemini.New(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, nil
	case config.ProviderOpenRouter:
		return openrouter.New(cfg.OpenRouter), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func newFileStore(ctx context.Context, cfg config.UploadConfig) (upload.Store, error) {
	if cfg.Backend == config.UploadS3 {
		s, err := upload.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 upload store: %w", err)
		}
		return s, nil
	}
	l, err := upload.NewLocal(cfg.Dir)
	if err != nil {
		return nil, err
	}
	return l, nil
}
