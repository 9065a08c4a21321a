package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Spot represents a pet-friendly location shown on the map
type Spot struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Type        string    `json:"type" gorm:"size:20;default:'DOG_PARK'"` // DOG_PARK, VET, PET_STORE
	Rating      *float64  `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Spot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// CreateSpotRequest defines the request body for creating a spot
type CreateSpotRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Latitude    float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64  `json:"longitude" validate:"min=-180,max=180"`
	Type        string   `json:"type,omitempty" validate:"omitempty,oneof=DOG_PARK VET PET_STORE"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
}
