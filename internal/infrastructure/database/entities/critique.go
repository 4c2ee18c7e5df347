package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Critique stores scored feedback for one haiku. The generation contract
// bounds each score 1-5; the column itself does not enforce the bound.
type Critique struct {
	ID                string `gorm:"primaryKey;size:64"`
	HaikuID           uint   `gorm:"index"`
	CreativityScore   int    `gorm:"not null"`
	VocabularyDensity int    `gorm:"not null"`
	RizzLevel         int    `gorm:"not null"`
	CreatedAt         time.Time
}

// BeforeCreate ensures defaults.
func (c *Critique) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
