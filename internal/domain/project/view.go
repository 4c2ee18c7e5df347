package project

import (
	"sort"
	"time"

	"haiku-server/internal/domain/haiku"
)

// View is the materialized project state pushed to dashboard observers.
// Every child collection is sorted newest first, recursively.
type View struct {
	ProjectID uint        `json:"project_id"`
	Name      string      `json:"name"`
	Haikus    []HaikuView `json:"haikus"`
}

// HaikuView is one poem with its artifacts.
type HaikuView struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Text         string            `json:"text"`
	CreatedAt    time.Time         `json:"created_at"`
	ImagePrompts []ImagePromptView `json:"image_prompts"`
	Critiques    []CritiqueView    `json:"critiques"`
}

// ImagePromptView is one prompt with its generated images.
type ImagePromptView struct {
	ID     string      `json:"id"`
	Text   string      `json:"text"`
	Images []ImageView `json:"images"`
}

// ImageView carries the base64 payload of one generated image.
type ImageView struct {
	ID  string `json:"id"`
	B64 string `json:"b64"`
}

// CritiqueView carries the three critique scores.
type CritiqueView struct {
	CreativityScore   int `json:"creativity_score"`
	VocabularyDensity int `json:"vocabulary_density"`
	RizzLevel         int `json:"rizz_level"`
}

// NewView assembles the push payload from a fully loaded project. The
// assembly sorts every level itself so the view does not depend on storage
// ordering.
func NewView(p *Project) *View {
	haikus := make([]HaikuView, 0, len(p.Haikus))
	for _, h := range p.Haikus {
		haikus = append(haikus, newHaikuView(h))
	}
	sort.SliceStable(haikus, func(i, j int) bool {
		return haikus[i].CreatedAt.After(haikus[j].CreatedAt)
	})

	return &View{
		ProjectID: p.ID,
		Name:      p.Name,
		Haikus:    haikus,
	}
}

func newHaikuView(h haiku.Haiku) HaikuView {
	prompts := make([]ImagePromptView, 0, len(h.ImagePrompts))
	promptCreated := make(map[string]time.Time, len(h.ImagePrompts))
	for _, p := range h.ImagePrompts {
		prompts = append(prompts, newImagePromptView(p))
		promptCreated[p.ID] = p.CreatedAt
	}
	sort.SliceStable(prompts, func(i, j int) bool {
		return promptCreated[prompts[i].ID].After(promptCreated[prompts[j].ID])
	})

	critiques := make([]CritiqueView, 0, len(h.Critiques))
	ordered := append([]haiku.Critique(nil), h.Critiques...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	for _, c := range ordered {
		critiques = append(critiques, CritiqueView{
			CreativityScore:   c.CreativityScore,
			VocabularyDensity: c.VocabularyDensity,
			RizzLevel:         c.RizzLevel,
		})
	}

	return HaikuView{
		ID:           h.ID,
		Title:        h.Title,
		Text:         h.Text,
		CreatedAt:    h.CreatedAt,
		ImagePrompts: prompts,
		Critiques:    critiques,
	}
}

func newImagePromptView(p haiku.ImagePrompt) ImagePromptView {
	images := make([]ImageView, 0, len(p.Images))
	imageCreated := make(map[string]time.Time, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ImageView{ID: img.ID, B64: img.B64})
		imageCreated[img.ID] = img.CreatedAt
	}
	sort.SliceStable(images, func(i, j int) bool {
		return imageCreated[images[i].ID].After(imageCreated[images[j].ID])
	})

	return ImagePromptView{
		ID:     p.ID,
		Text:   p.Text,
		Images: images,
	}
}
