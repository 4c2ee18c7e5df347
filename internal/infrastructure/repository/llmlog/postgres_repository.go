package llmlog

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"haiku-server/internal/domain/generation"
	"haiku-server/internal/infrastructure/database/entities"
	"haiku-server/internal/utils/platformerrors"
)

// PostgresRepository appends generation audit rows. Rows are never updated
// or deleted here; the live-sync path does not read them.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Record inserts one audit row.
func (r *PostgresRepository) Record(ctx context.Context, entry *generation.Log) error {
	entity := &entities.LLMLog{
		ID:       entry.ID,
		ChainID:  entry.ChainID,
		Name:     entry.Name,
		Model:    entry.Model,
		Messages: datatypes.JSON(entry.Messages),
		Response: datatypes.JSON(entry.Response),
		Answer:   entry.Answer,
		Success:  entry.Success,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to record generation log", err, "llmlog-create-db-001")
	}

	entry.ID = entity.ID
	entry.CreatedAt = entity.CreatedAt
	return nil
}
