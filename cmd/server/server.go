package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"haiku-server/internal/config"
	"haiku-server/internal/domain/haiku"
	"haiku-server/internal/domain/project"
	"haiku-server/internal/infrastructure/database"
	"haiku-server/internal/infrastructure/llmclient"
	"haiku-server/internal/infrastructure/logger"
	"haiku-server/internal/infrastructure/observability"
	"haiku-server/internal/infrastructure/queue"
	haikurepo "haiku-server/internal/infrastructure/repository/haiku"
	llmlogrepo "haiku-server/internal/infrastructure/repository/llmlog"
	projectrepo "haiku-server/internal/infrastructure/repository/project"
	"haiku-server/internal/interfaces/httpserver"
	"haiku-server/internal/notify"
	"haiku-server/internal/worker"
)

// @title Haiku API
// @version 1.0
// @description Generates haikus, critiques and images per project and streams project state to dashboards.
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	projectRepository := projectrepo.NewPostgresRepository(db)
	haikuRepository := haikurepo.NewPostgresRepository(db)
	llmLogRepository := llmlogrepo.NewPostgresRepository(db)

	provider := llmclient.NewClient(llmclient.Config{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		ChatModel:  cfg.ChatModel,
		ImageModel: cfg.ImageModel,
		ImageSize:  cfg.ImageSize,
		ImageStyle: cfg.ImageStyle,
		ImageCount: cfg.ImageCount,
	}, llmLogRepository, log)

	hub := notify.NewHub()
	taskQueue := queue.NewMemoryQueue(cfg.TaskQueueSize, log)

	projectService := project.NewService(projectRepository, log)
	haikuService := haiku.NewService(
		haikuRepository,
		projectService,
		provider,
		taskQueue,
		hub,
		cfg.PromptVariantCount,
		log,
	)

	workerPool := worker.NewPool(
		taskQueue,
		haikuService,
		worker.Config{
			WorkerCount: cfg.BackgroundWorkerCount,
			TaskTimeout: cfg.BackgroundTaskTimeout,
		},
		log,
	)

	workerPool.Start(ctx)
	defer func() {
		log.Info().Msg("stopping worker pool")
		workerPool.Stop()
	}()

	httpServer := httpserver.New(cfg, log, projectService, haikuService, hub)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
