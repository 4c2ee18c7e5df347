package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImagePrompt is a textual prompt derived from a haiku, used to request images.
type ImagePrompt struct {
	ID        string `gorm:"primaryKey;size:64"`
	HaikuID   uint   `gorm:"index"`
	Text      string `gorm:"type:text"`
	CreatedAt time.Time

	Images []HaikuImage `gorm:"foreignKey:ImagePromptID"`
}

// BeforeCreate ensures defaults.
func (p *ImagePrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
