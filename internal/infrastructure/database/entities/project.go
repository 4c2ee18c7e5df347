package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents the persisted project record.
type Project struct {
	ID        uint   `gorm:"primaryKey"`
	UUID      string `gorm:"uniqueIndex;size:64"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Haikus []Haiku `gorm:"foreignKey:ProjectID"`
}

// BeforeCreate ensures defaults.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
