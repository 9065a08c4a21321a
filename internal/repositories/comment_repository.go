package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// SocialCommentRepository defines the interface for post comment operations
type SocialCommentRepository interface {
	CreateComment(comment *models.SocialPostComment) error
	GetRecentCommentsByPostID(postID string, limit int) ([]models.SocialPostComment, error)
	GetCommentsCountByPostID(postID string) (int64, error)
}

// PostgresSocialCommentRepository implements SocialCommentRepository for PostgreSQL
type PostgresSocialCommentRepository struct {
	db *gorm.DB
}

// NewPostgresSocialCommentRepository creates a new PostgresSocialCommentRepository
func NewPostgresSocialCommentRepository(db *gorm.DB) *PostgresSocialCommentRepository {
	return &PostgresSocialCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresSocialCommentRepository) CreateComment(comment *models.SocialPostComment) error {
	return r.db.Create(comment).Error
}

// GetRecentCommentsByPostID retrieves the most recent comments for a post
func (r *PostgresSocialCommentRepository) GetRecentCommentsByPostID(postID string, limit int) ([]models.SocialPostComment, error) {
	var comments []models.SocialPostComment
	if err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsCountByPostID retrieves the total comment count for a post
func (r *PostgresSocialCommentRepository) GetCommentsCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.SocialPostComment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
