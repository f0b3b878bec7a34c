package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is an anonymous note left on someone's profile page.
// There is intentionally no author column.
type Feedback struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	TargetUserID string    `gorm:"type:uuid;index;not null" json:"target_user_id"`
	Message      string    `gorm:"size:1000;not null" json:"message"`
	WordCount    int       `json:"word_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (f *Feedback) TableName() string { return "anonymous_feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
