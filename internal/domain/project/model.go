package project

import (
	"context"
	"time"

	"haiku-server/internal/domain/haiku"
)

// Project is the top-level container grouping haikus and their artifacts.
type Project struct {
	ID        uint
	UUID      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Haikus []haiku.Haiku
}

// Repository persists projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	// List returns all projects, newest first.
	List(ctx context.Context) ([]*Project, error)
	FindByID(ctx context.Context, id uint) (*Project, error)
	// LoadTree returns the project with its full haiku/prompt/image/critique
	// tree populated.
	LoadTree(ctx context.Context, id uint) (*Project, error)
	// Touch bumps the project's updated_at.
	Touch(ctx context.Context, id uint) error
}
