package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LLMLog is the append-only audit record of one provider call. Rows are
// never updated or deleted.
type LLMLog struct {
	ID        string `gorm:"primaryKey;size:64"`
	ChainID   string `gorm:"index;size:64;not null"`
	Name      string `gorm:"size:128"`
	Model     string `gorm:"size:128;not null"`
	Messages  datatypes.JSON `gorm:"type:jsonb"`
	Response  datatypes.JSON `gorm:"type:jsonb"`
	Answer    string         `gorm:"type:text"`
	Success   bool
	CreatedAt time.Time
}

// BeforeCreate ensures defaults.
func (l *LLMLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
