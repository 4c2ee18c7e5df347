package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"haiku-server/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the haiku domain.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.Project{},
		&entities.Haiku{},
		&entities.ImagePrompt{},
		&entities.HaikuImage{},
		&entities.Critique{},
		&entities.LLMLog{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
