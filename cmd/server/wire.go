//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"haiku-server/internal/config"
	"haiku-server/internal/domain/generation"
	haikuDomain "haiku-server/internal/domain/haiku"
	projectDomain "haiku-server/internal/domain/project"
	"haiku-server/internal/infrastructure/database"
	"haiku-server/internal/infrastructure/llmclient"
	"haiku-server/internal/infrastructure/logger"
	"haiku-server/internal/infrastructure/queue"
	haikurepo "haiku-server/internal/infrastructure/repository/haiku"
	llmlogrepo "haiku-server/internal/infrastructure/repository/llmlog"
	projectrepo "haiku-server/internal/infrastructure/repository/project"
	"haiku-server/internal/interfaces/httpserver"
	"haiku-server/internal/interfaces/httpserver/handlers"
	"haiku-server/internal/notify"
)

var haikuSet = wire.NewSet(
	projectrepo.NewPostgresRepository,
	wire.Bind(new(projectDomain.Repository), new(*projectrepo.PostgresRepository)),
	haikurepo.NewPostgresRepository,
	wire.Bind(new(haikuDomain.Repository), new(*haikurepo.PostgresRepository)),
	llmlogrepo.NewPostgresRepository,
	wire.Bind(new(generation.LogStore), new(*llmlogrepo.PostgresRepository)),
	newProvider,
	wire.Bind(new(generation.Provider), new(*llmclient.Client)),
	notify.NewHub,
	wire.Bind(new(haikuDomain.Notifier), new(*notify.Hub)),
	wire.Bind(new(handlers.StateWaiter), new(*notify.Hub)),
	newTaskQueue,
	newProjectService,
	wire.Bind(new(projectDomain.Service), new(*projectDomain.ServiceImpl)),
	wire.Bind(new(haikuDomain.ProjectGateway), new(*projectDomain.ServiceImpl)),
	newHaikuService,
)

// BuildApplication demonstrates how to assemble the haiku service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		haikuSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newProvider(cfg *config.Config, logs generation.LogStore, log zerolog.Logger) *llmclient.Client {
	return llmclient.NewClient(llmclient.Config{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		ChatModel:  cfg.ChatModel,
		ImageModel: cfg.ImageModel,
		ImageSize:  cfg.ImageSize,
		ImageStyle: cfg.ImageStyle,
		ImageCount: cfg.ImageCount,
	}, logs, log)
}

func newTaskQueue(cfg *config.Config, log zerolog.Logger) queue.TaskQueue {
	return queue.NewMemoryQueue(cfg.TaskQueueSize, log)
}

func newProjectService(repo projectDomain.Repository, log zerolog.Logger) *projectDomain.ServiceImpl {
	return projectDomain.NewService(repo, log)
}

func newHaikuService(
	cfg *config.Config,
	repo haikuDomain.Repository,
	projects haikuDomain.ProjectGateway,
	provider generation.Provider,
	tasks queue.TaskQueue,
	notifier haikuDomain.Notifier,
	log zerolog.Logger,
) haikuDomain.Service {
	return haikuDomain.NewService(repo, projects, provider, tasks, notifier, cfg.PromptVariantCount, log)
}
