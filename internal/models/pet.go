package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pet represents a pet profile owned by a user
type Pet struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	Name          string         `json:"name"`
	Type          string         `json:"type" gorm:"size:10"` // DOG or CAT
	Breed         string         `json:"breed,omitempty"`
	Birthday      *time.Time     `json:"birthday,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	OwnerID       string         `json:"owner_id" gorm:"index"`
	CreatedAt     time.Time      `json:"created_at"`
	HealthRecords []HealthRecord `json:"health_records" gorm:"foreignKey:PetID"`
}

func (p *Pet) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HealthRecord is a dated health note attached to a pet
type HealthRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	PetID     string    `json:"pet_id" gorm:"index"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *HealthRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// CreatePetRequest defines the request body for creating a pet
type CreatePetRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=50"`
	Type     string   `json:"type" validate:"required,oneof=DOG CAT"`
	Breed    string   `json:"breed,omitempty" validate:"omitempty,min=1,max=50"`
	Birthday string   `json:"birthday,omitempty" validate:"omitempty"`
	Weight   *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	OwnerID  string   `json:"owner_id" validate:"required"`
}

// CreateHealthRecordRequest defines the request body for adding a health record
type CreateHealthRecordRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
	Notes string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Date  string `json:"date" validate:"required"`
}
