package entities

import (
	"time"
)

// Haiku represents one generated poem belonging to a project.
type Haiku struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"index"`
	Title     string
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ImagePrompts []ImagePrompt `gorm:"foreignKey:HaikuID"`
	Critiques    []Critique    `gorm:"foreignKey:HaikuID"`
}
