package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"haiku-server/internal/domain/haiku"
	"haiku-server/internal/interfaces/httpserver/requests"
	"haiku-server/internal/interfaces/httpserver/responses"
)

// HaikuHandler exposes HTTP entrypoints for the generation actions.
type HaikuHandler struct {
	service haiku.Service
	log     zerolog.Logger
}

// NewHaikuHandler constructs the handler.
func NewHaikuHandler(service haiku.Service, log zerolog.Logger) *HaikuHandler {
	return &HaikuHandler{
		service: service,
		log:     log.With().Str("handler", "haiku").Logger(),
	}
}

// Generate handles POST /projects/haiku
// @Summary Generate a haiku
// @Description Generates a haiku from a description and stores it under the project
// @Tags Haikus
// @Accept json
// @Produce json
// @Param request body requests.GenerateHaikuRequest true "Description and target project"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/haiku [post]
func (h *HaikuHandler) Generate(c *gin.Context) {
	var req requests.GenerateHaikuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Generate(c.Request.Context(), req.ProjectID, req.Description); err != nil {
		responses.HandleError(c, err, "failed to generate haiku")
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true})
}

// Critique handles POST /projects/haiku-critique
// @Summary Request a haiku critique
// @Description Queues critique generation for a haiku; scores arrive via the dashboard
// @Tags Haikus
// @Accept json
// @Produce json
// @Param request body requests.CritiqueRequest true "Target haiku"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/haiku-critique [post]
func (h *HaikuHandler) Critique(c *gin.Context) {
	var req requests.CritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RequestCritique(c.Request.Context(), req.HaikuID); err != nil {
		responses.HandleError(c, err, "failed to queue critique")
		return
	}

	c.JSON(http.StatusOK, responses.MessageResponse{Message: "critique queued"})
}

// ImagePrompts handles POST /projects/generate-image-prompts
// @Summary Request image prompt variants
// @Description Queues concurrent image-prompt generation for a haiku
// @Tags Haikus
// @Accept json
// @Produce json
// @Param request body requests.ImagePromptsRequest true "Target haiku"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/generate-image-prompts [post]
func (h *HaikuHandler) ImagePrompts(c *gin.Context) {
	var req requests.ImagePromptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RequestImagePrompts(c.Request.Context(), req.HaikuID); err != nil {
		responses.HandleError(c, err, "failed to queue image prompts")
		return
	}

	c.JSON(http.StatusOK, responses.MessageResponse{Message: "image prompts queued"})
}

// UpdateImagePrompt handles PUT /projects/update-image-prompt
// @Summary Edit an image prompt
// @Description Replaces an image prompt's text before image generation
// @Tags Haikus
// @Accept json
// @Produce json
// @Param request body requests.UpdateImagePromptRequest true "Prompt id and new text"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/update-image-prompt [put]
func (h *HaikuHandler) UpdateImagePrompt(c *gin.Context) {
	var req requests.UpdateImagePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateImagePrompt(c.Request.Context(), req.PromptID, req.NewText); err != nil {
		responses.HandleError(c, err, "failed to update image prompt")
		return
	}

	c.JSON(http.StatusOK, responses.MessageResponse{Message: "image prompt updated"})
}

// GenerateImage handles POST /projects/generate-image
// @Summary Request image generation
// @Description Queues image generation for an image prompt
// @Tags Haikus
// @Accept json
// @Produce json
// @Param request body requests.GenerateImageRequest true "Prompt and haiku ids"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /projects/generate-image [post]
func (h *HaikuHandler) GenerateImage(c *gin.Context) {
	var req requests.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RequestImage(c.Request.Context(), req.HaikuID, req.PromptID); err != nil {
		responses.HandleError(c, err, "failed to queue image generation")
		return
	}

	c.JSON(http.StatusOK, responses.MessageResponse{Message: "image generation queued"})
}
