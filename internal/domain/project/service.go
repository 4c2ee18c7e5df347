package project

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"haiku-server/internal/utils/platformerrors"
)

// Service exposes project lifecycle operations and view materialization.
type Service interface {
	Create(ctx context.Context, name string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	// MaterializeView loads the full project tree and assembles the push
	// payload. Called once per dashboard wake-up; always reads current
	// storage state.
	MaterializeView(ctx context.Context, id uint) (*View, error)
}

// ServiceImpl provides the domain implementation.
type ServiceImpl struct {
	projects Repository
	log      zerolog.Logger
}

// NewService wires dependencies.
func NewService(projects Repository, log zerolog.Logger) *ServiceImpl {
	return &ServiceImpl{
		projects: projects,
		log:      log.With().Str("component", "project-service").Logger(),
	}
}

// Create persists a new project.
func (s *ServiceImpl) Create(ctx context.Context, name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"project name is required", nil, "project-create-name-001")
	}

	p := &Project{Name: name}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().Uint("project_id", p.ID).Str("name", p.Name).Msg("project created")
	return p, nil
}

// List returns all projects, newest first.
func (s *ServiceImpl) List(ctx context.Context) ([]*Project, error) {
	return s.projects.List(ctx)
}

// MaterializeView assembles the current dashboard payload for one project.
func (s *ServiceImpl) MaterializeView(ctx context.Context, id uint) (*View, error) {
	p, err := s.projects.LoadTree(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "materialize project view")
	}
	return NewView(p), nil
}

// Exists reports storage-level presence of a project; satisfies the haiku
// pipeline's ProjectGateway.
func (s *ServiceImpl) Exists(ctx context.Context, projectID uint) error {
	_, err := s.projects.FindByID(ctx, projectID)
	return err
}

// Touch bumps the project's updated_at; satisfies the haiku pipeline's
// ProjectGateway.
func (s *ServiceImpl) Touch(ctx context.Context, projectID uint) error {
	return s.projects.Touch(ctx, projectID)
}
