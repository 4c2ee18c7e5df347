package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HaikuImage stores one generated image as a base64 payload.
type HaikuImage struct {
	ID            string `gorm:"primaryKey;size:64"`
	ImagePromptID string `gorm:"index;size:64"`
	ImageB64      string `gorm:"type:text;not null"`
	CreatedAt     time.Time
}

// BeforeCreate ensures defaults.
func (i *HaikuImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
