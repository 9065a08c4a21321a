package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity types fanned out to a post's author
const (
	ActivityComment  = "COMMENT"
	ActivityReaction = "REACTION"
)

// SocialPost represents a post on the community feed
type SocialPost struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url,omitempty"`
	AuthorID    string    `json:"author_id" gorm:"index"`
	ReportCount int       `json:"report_count" gorm:"default:0"`
	IsHidden    bool      `json:"is_hidden" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (p *SocialPost) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SocialPostComment represents a comment on a social post
type SocialPostComment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	PostID    string    `json:"post_id" gorm:"index"`
	AuthorID  string    `json:"author_id" gorm:"index"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *SocialPostComment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SocialPostReaction marks that a user liked a post, unique per (post, user)
type SocialPostReaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	CreatedAt time.Time `json:"created_at"`
}

// SocialActivity is a notification generated when another user acts on a post
type SocialActivity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID string    `json:"recipient_id" gorm:"index"`
	ActorID     string    `json:"actor_id" gorm:"index"`
	PostID      string    `json:"post_id"`
	Type        string    `json:"type" gorm:"size:20"` // COMMENT or REACTION
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a social post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=2,max=1000"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,max=500"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
