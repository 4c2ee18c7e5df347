package requests

// CreateProjectRequest creates a new project.
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// GenerateHaikuRequest triggers inline haiku generation for a project.
type GenerateHaikuRequest struct {
	Description string `json:"description" binding:"required"`
	ProjectID   uint   `json:"project_id" binding:"required"`
}

// CritiqueRequest defers critique generation for a haiku.
type CritiqueRequest struct {
	HaikuID uint `json:"haiku_id" binding:"required"`
}

// ImagePromptsRequest defers image-prompt variant generation for a haiku.
type ImagePromptsRequest struct {
	HaikuID uint `json:"haiku_id" binding:"required"`
}

// UpdateImagePromptRequest edits an image prompt's text.
type UpdateImagePromptRequest struct {
	PromptID string `json:"prompt_id" binding:"required"`
	NewText  string `json:"new_text" binding:"required"`
}

// GenerateImageRequest defers image generation for an image prompt.
type GenerateImageRequest struct {
	PromptID string `json:"prompt_id" binding:"required"`
	HaikuID  uint   `json:"haiku_id" binding:"required"`
}
