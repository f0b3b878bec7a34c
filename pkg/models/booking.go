package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRequest struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	RequesterName      string    `gorm:"size:200;not null" json:"requester_name"`
	RequesterEmail     string    `gorm:"size:320;not null" json:"requester_email"`
	RequestedTime      time.Time `json:"requested_time"`
	DurationMinutes    int       `gorm:"default:60" json:"duration_minutes"`
	LocationPreference *string   `gorm:"size:500" json:"location_preference,omitempty"`
	Note               *string   `gorm:"size:2000" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BookingRequest) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
