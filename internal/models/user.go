package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a minimal account record. Authentication itself lives upstream;
// this row anchors ownership and the community trust score.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Name       string    `json:"name"`
	Email      string    `json:"email" gorm:"uniqueIndex"`
	TrustScore int       `json:"trust_score" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the author payload embedded in feed and alert responses
type UserCompact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrustScore int    `json:"trust_score"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, TrustScore: u.TrustScore}
}

// CreateUserRequest defines the request body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
