package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunityAlert is a geolocated safety/event/info marker submitted by a user
type CommunityAlert struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	Type          string         `json:"type" gorm:"size:10;index"` // DANGER, EVENT, INFO
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Severity      *int           `json:"severity,omitempty"` // 1-5
	AuthorID      string         `json:"author_id" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	Verifications []Verification `json:"-" gorm:"foreignKey:AlertID"`
}

func (a *CommunityAlert) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Verification is a user's endorsement of an alert, unique per (user, alert)
type Verification struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_alert_verification"`
	AlertID   string    `json:"alert_id" gorm:"index;uniqueIndex:idx_user_alert_verification"`
	IsValid   bool      `json:"is_valid" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *Verification) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// CreateAlertRequest defines the request body for creating a community alert
type CreateAlertRequest struct {
	Type        string  `json:"type" validate:"required,oneof=DANGER EVENT INFO"`
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	Severity    *int    `json:"severity,omitempty" validate:"omitempty,min=1,max=5"`
}
