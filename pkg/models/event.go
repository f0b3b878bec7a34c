package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarEvent is a canonical event row. Rows with a non-nil
// GoogleEventID are owned by the sync subsystem and replaced wholesale
// on every sync run; rows with a nil GoogleEventID were entered
// manually and are never touched by sync.
type CalendarEvent struct {
	ID            string  `gorm:"type:uuid;primaryKey" json:"id"`
	GoogleEventID *string `gorm:"index" json:"google_event_id,omitempty"`
	UserID        string  `gorm:"type:uuid;index;not null" json:"user_id"`

	Title     string    `gorm:"size:500;not null" json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Location  *string   `gorm:"size:500" json:"location,omitempty"`

	IsPublic              bool `gorm:"default:false" json:"is_public"`
	IsConfirmedAttendance bool `gorm:"default:false" json:"is_confirmed_attendance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
