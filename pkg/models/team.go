package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string  `gorm:"size:200;not null" json:"name"`
	Location *string `gorm:"size:200" json:"location,omitempty"`
	LogoURL  *string `json:"logo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Team struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID string    `gorm:"type:uuid;not null" json:"company_id"`
	LeaderID  string    `gorm:"type:uuid;not null" json:"leader_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type TeamMembership struct {
	TeamID   string    `gorm:"type:uuid;primaryKey" json:"team_id"`
	UserID   string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
