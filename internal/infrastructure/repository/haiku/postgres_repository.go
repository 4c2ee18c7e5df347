package haiku

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "haiku-server/internal/domain/haiku"
	"haiku-server/internal/infrastructure/database/entities"
	"haiku-server/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for haikus and their artifacts.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateHaiku inserts a new haiku record.
func (r *PostgresRepository) CreateHaiku(ctx context.Context, h *domain.Haiku) error {
	entity := &entities.Haiku{
		ProjectID: h.ProjectID,
		Title:     h.Title,
		Text:      h.Text,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create haiku", err, "haiku-create-db-001")
	}

	h.ID = entity.ID
	h.CreatedAt = entity.CreatedAt
	h.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindHaikuByID retrieves one haiku without its children.
func (r *PostgresRepository) FindHaikuByID(ctx context.Context, id uint) (*domain.Haiku, error) {
	var entity entities.Haiku
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"haiku not found", err, "haiku-find-notfound-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find haiku", err, "haiku-find-db-001")
	}

	return &domain.Haiku{
		ID:        entity.ID,
		ProjectID: entity.ProjectID,
		Title:     entity.Title,
		Text:      entity.Text,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}, nil
}

// CreateImagePrompt inserts a new prompt for a haiku.
func (r *PostgresRepository) CreateImagePrompt(ctx context.Context, p *domain.ImagePrompt) error {
	entity := &entities.ImagePrompt{
		ID:      p.ID,
		HaikuID: p.HaikuID,
		Text:    p.Text,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create image prompt", err, "prompt-create-db-001")
	}

	p.ID = entity.ID
	p.CreatedAt = entity.CreatedAt
	return nil
}

// FindImagePromptByID retrieves one prompt.
func (r *PostgresRepository) FindImagePromptByID(ctx context.Context, id string) (*domain.ImagePrompt, error) {
	var entity entities.ImagePrompt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"image prompt not found", err, "prompt-find-notfound-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find image prompt", err, "prompt-find-db-001")
	}

	return &domain.ImagePrompt{
		ID:        entity.ID,
		HaikuID:   entity.HaikuID,
		Text:      entity.Text,
		CreatedAt: entity.CreatedAt,
	}, nil
}

// UpdateImagePromptText persists an edited prompt text.
func (r *PostgresRepository) UpdateImagePromptText(ctx context.Context, id string, text string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ImagePrompt{}).
		Where("id = ?", id).
		Update("text", text)
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update image prompt", result.Error, "prompt-update-db-001")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"image prompt not found", nil, "prompt-update-notfound-001")
	}
	return nil
}

// CreateImage inserts one generated image payload.
func (r *PostgresRepository) CreateImage(ctx context.Context, img *domain.Image) error {
	entity := &entities.HaikuImage{
		ID:            img.ID,
		ImagePromptID: img.ImagePromptID,
		ImageB64:      img.B64,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create image", err, "image-create-db-001")
	}

	img.ID = entity.ID
	img.CreatedAt = entity.CreatedAt
	return nil
}

// CreateCritique inserts one critique.
func (r *PostgresRepository) CreateCritique(ctx context.Context, c *domain.Critique) error {
	entity := &entities.Critique{
		ID:                c.ID,
		HaikuID:           c.HaikuID,
		CreativityScore:   c.CreativityScore,
		VocabularyDensity: c.VocabularyDensity,
		RizzLevel:         c.RizzLevel,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create critique", err, "critique-create-db-001")
	}

	c.ID = entity.ID
	c.CreatedAt = entity.CreatedAt
	return nil
}
