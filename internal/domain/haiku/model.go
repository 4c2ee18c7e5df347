package haiku

import (
	"context"
	"time"
)

// Haiku is one generated poem. Ownership is tree-shaped: a haiku belongs to
// one project and owns its prompts, images and critiques.
type Haiku struct {
	ID        uint
	ProjectID uint
	Title     string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time

	ImagePrompts []ImagePrompt
	Critiques    []Critique
}

// ImagePrompt is a textual prompt derived from a haiku. Text is the only
// mutable field, through UpdateImagePrompt.
type ImagePrompt struct {
	ID        string
	HaikuID   uint
	Text      string
	CreatedAt time.Time

	Images []Image
}

// Image is one generated image payload, stored base64-encoded.
type Image struct {
	ID            string
	ImagePromptID string
	B64           string
	CreatedAt     time.Time
}

// Critique holds the three scores for one haiku. The generation contract
// bounds each score 1-5.
type Critique struct {
	ID                string
	HaikuID           uint
	CreativityScore   int
	VocabularyDensity int
	RizzLevel         int
	CreatedAt         time.Time
}

// Repository persists haikus and their owned artifacts.
type Repository interface {
	CreateHaiku(ctx context.Context, h *Haiku) error
	FindHaikuByID(ctx context.Context, id uint) (*Haiku, error)

	CreateImagePrompt(ctx context.Context, p *ImagePrompt) error
	FindImagePromptByID(ctx context.Context, id string) (*ImagePrompt, error)
	UpdateImagePromptText(ctx context.Context, id string, text string) error

	CreateImage(ctx context.Context, img *Image) error
	CreateCritique(ctx context.Context, c *Critique) error
}
