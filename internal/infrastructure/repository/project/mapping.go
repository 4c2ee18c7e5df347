package project

import (
	domain "haiku-server/internal/domain/project"
	haikudomain "haiku-server/internal/domain/haiku"
	"haiku-server/internal/infrastructure/database/entities"
)

func mapProjectTreeFromEntity(entity *entities.Project) *domain.Project {
	p := mapProjectFromEntity(entity)
	p.Haikus = make([]haikudomain.Haiku, 0, len(entity.Haikus))
	for i := range entity.Haikus {
		p.Haikus = append(p.Haikus, mapHaikuFromEntity(&entity.Haikus[i]))
	}
	return p
}

func mapHaikuFromEntity(entity *entities.Haiku) haikudomain.Haiku {
	prompts := make([]haikudomain.ImagePrompt, 0, len(entity.ImagePrompts))
	for i := range entity.ImagePrompts {
		prompts = append(prompts, mapImagePromptFromEntity(&entity.ImagePrompts[i]))
	}

	critiques := make([]haikudomain.Critique, 0, len(entity.Critiques))
	for _, c := range entity.Critiques {
		critiques = append(critiques, haikudomain.Critique{
			ID:                c.ID,
			HaikuID:           c.HaikuID,
			CreativityScore:   c.CreativityScore,
			VocabularyDensity: c.VocabularyDensity,
			RizzLevel:         c.RizzLevel,
			CreatedAt:         c.CreatedAt,
		})
	}

	return haikudomain.Haiku{
		ID:           entity.ID,
		ProjectID:    entity.ProjectID,
		Title:        entity.Title,
		Text:         entity.Text,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
		ImagePrompts: prompts,
		Critiques:    critiques,
	}
}

func mapImagePromptFromEntity(entity *entities.ImagePrompt) haikudomain.ImagePrompt {
	images := make([]haikudomain.Image, 0, len(entity.Images))
	for _, img := range entity.Images {
		images = append(images, haikudomain.Image{
			ID:            img.ID,
			ImagePromptID: img.ImagePromptID,
			B64:           img.ImageB64,
			CreatedAt:     img.CreatedAt,
		})
	}

	return haikudomain.ImagePrompt{
		ID:        entity.ID,
		HaikuID:   entity.HaikuID,
		Text:      entity.Text,
		CreatedAt: entity.CreatedAt,
		Images:    images,
	}
}
