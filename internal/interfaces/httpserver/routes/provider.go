package routes

import (
	"github.com/gin-gonic/gin"

	"haiku-server/internal/interfaces/httpserver/handlers"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		handlers: handlerProvider,
	}
}

// Register attaches all API routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine) {
	registerProjectRoutes(engine, p.handlers)
}
