package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarIntegration is stored as a JSON column on the profile row.
// ShowPublicEvents controls the visibility of events created by the
// next sync run; LastSyncedAt is updated after every successful sync.
type CalendarIntegration struct {
	GoogleCalendarID string     `json:"google_calendar_id"`
	ShowPublicEvents bool       `json:"show_public_events"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
}

func (ci CalendarIntegration) Value() (driver.Value, error) {
	return json.Marshal(ci)
}

func (ci *CalendarIntegration) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, ci)
	case string:
		return json.Unmarshal([]byte(v), ci)
	}
	return fmt.Errorf("unsupported type %T for calendar_integration", value)
}

func (CalendarIntegration) GormDataType() string { return "json" }

// UserProfile is the business card itself. UserID identifies the
// authenticated account; ID is the profile row referenced by events,
// bookings and feedback.
type UserProfile struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string  `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyID *string `gorm:"type:uuid" json:"company_id,omitempty"`

	Name      string  `gorm:"size:200;not null" json:"name"`
	Email     *string `gorm:"size:320" json:"email,omitempty"`
	Phone     *string `gorm:"size:50" json:"phone,omitempty"`
	Position  *string `gorm:"size:200" json:"position,omitempty"`
	Bio       *string `gorm:"size:2000" json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	QRCodeURL *string `json:"qr_code_url,omitempty"`

	CalendarIntegration *CalendarIntegration `gorm:"column:calendar_integration" json:"calendar_integration,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
