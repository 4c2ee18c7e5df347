package project

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "haiku-server/internal/domain/project"
	"haiku-server/internal/infrastructure/database/entities"
	"haiku-server/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for projects.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new project record.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Project) error {
	entity := &entities.Project{
		Name: p.Name,
		UUID: p.UUID,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create project", err, "project-create-db-001")
	}

	p.ID = entity.ID
	p.UUID = entity.UUID
	p.CreatedAt = entity.CreatedAt
	p.UpdatedAt = entity.UpdatedAt
	return nil
}

// List returns all projects ordered newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Project, error) {
	var rows []entities.Project
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list projects", err, "project-list-db-001")
	}

	projects := make([]*domain.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, mapProjectFromEntity(&rows[i]))
	}
	return projects, nil
}

// FindByID retrieves one project without its children.
func (r *PostgresRepository) FindByID(ctx context.Context, id uint) (*domain.Project, error) {
	var entity entities.Project
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"project not found", err, "project-find-notfound-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find project", err, "project-find-db-001")
	}
	return mapProjectFromEntity(&entity), nil
}

// LoadTree retrieves one project with its full haiku tree preloaded.
func (r *PostgresRepository) LoadTree(ctx context.Context, id uint) (*domain.Project, error) {
	var entity entities.Project
	if err := r.db.WithContext(ctx).
		Preload("Haikus").
		Preload("Haikus.ImagePrompts").
		Preload("Haikus.ImagePrompts.Images").
		Preload("Haikus.Critiques").
		First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"project not found", err, "project-tree-notfound-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load project tree", err, "project-tree-db-001")
	}

	return mapProjectTreeFromEntity(&entity), nil
}

// Touch bumps updated_at, keeping it monotonically non-decreasing.
func (r *PostgresRepository) Touch(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to touch project", err, "project-touch-db-001")
	}
	return nil
}

func mapProjectFromEntity(entity *entities.Project) *domain.Project {
	return &domain.Project{
		ID:        entity.ID,
		UUID:      entity.UUID,
		Name:      entity.Name,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
