package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"haiku-server/internal/domain/project"
	"haiku-server/internal/interfaces/httpserver/requests"
	"haiku-server/internal/interfaces/httpserver/responses"
)

// ProjectHandler exposes HTTP entrypoints for project lifecycle.
type ProjectHandler struct {
	service project.Service
	log     zerolog.Logger
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(service project.Service, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		log:     log.With().Str("handler", "project").Logger(),
	}
}

// Create handles POST /projects/
// @Summary Create a project
// @Description Creates a new project to group haikus under
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body requests.CreateProjectRequest true "Project name"
// @Success 200 {object} responses.CreateProjectResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/ [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req requests.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		responses.HandleError(c, err, "failed to create project")
		return
	}

	c.JSON(http.StatusOK, responses.CreateProjectResponse{ProjectID: p.ID})
}

// List handles GET /projects/
// @Summary List projects
// @Description Lists all projects, newest first
// @Tags Projects
// @Produce json
// @Success 200 {array} responses.ProjectSummary
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/ [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, responses.MapProjectsToSummaries(projects))
}
