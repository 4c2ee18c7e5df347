package responses

import (
	"haiku-server/internal/domain/project"
)

// CreateProjectResponse acknowledges project creation.
type CreateProjectResponse struct {
	ProjectID uint `json:"project_id"`
}

// ProjectSummary is one entry of the project listing.
type ProjectSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SuccessResponse acknowledges actions that complete inline.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageResponse acknowledges actions that run in the background.
type MessageResponse struct {
	Message string `json:"message"`
}

// MapProjectsToSummaries maps domain projects to listing entries.
func MapProjectsToSummaries(projects []*project.Project) []ProjectSummary {
	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ProjectSummary{ID: p.ID, Name: p.Name})
	}
	return summaries
}
