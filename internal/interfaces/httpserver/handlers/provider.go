package handlers

import (
	"github.com/rs/zerolog"

	"haiku-server/internal/domain/haiku"
	"haiku-server/internal/domain/project"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Project   *ProjectHandler
	Haiku     *HaikuHandler
	Dashboard *DashboardHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	projectService project.Service,
	haikuService haiku.Service,
	waiter StateWaiter,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Project:   NewProjectHandler(projectService, log),
		Haiku:     NewHaikuHandler(haikuService, log),
		Dashboard: NewDashboardHandler(projectService, waiter, log),
	}
}
