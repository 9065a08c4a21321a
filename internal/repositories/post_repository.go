package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// SocialPostRepository defines the interface for social post data operations
type SocialPostRepository interface {
	CreatePost(post *models.SocialPost) error
	GetPostByID(id string) (*models.SocialPost, error)
	GetVisiblePosts(limit int) ([]models.SocialPost, error)
	IncrementReportCount(postID string) error
	HidePost(postID string) error
}

// PostgresSocialPostRepository implements SocialPostRepository for PostgreSQL
type PostgresSocialPostRepository struct {
	db *gorm.DB
}

// NewPostgresSocialPostRepository creates a new PostgresSocialPostRepository
func NewPostgresSocialPostRepository(db *gorm.DB) *PostgresSocialPostRepository {
	return &PostgresSocialPostRepository{db: db}
}

// CreatePost creates a new social post
func (r *PostgresSocialPostRepository) CreatePost(post *models.SocialPost) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresSocialPostRepository) GetPostByID(id string) (*models.SocialPost, error) {
	var post models.SocialPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetVisiblePosts retrieves non-hidden posts, newest first
func (r *PostgresSocialPostRepository) GetVisiblePosts(limit int) ([]models.SocialPost, error) {
	var posts []models.SocialPost
	if err := r.db.Where("is_hidden = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementReportCount bumps the report counter in a single atomic statement
func (r *PostgresSocialPostRepository) IncrementReportCount(postID string) error {
	return r.db.Model(&models.SocialPost{}).Where("id = ?", postID).
		UpdateColumn("report_count", gorm.Expr("report_count + ?", 1)).Error
}

// HidePost marks a post hidden. Hiding is sticky; there is no unhide here.
func (r *PostgresSocialPostRepository) HidePost(postID string) error {
	return r.db.Model(&models.SocialPost{}).Where("id = ?", postID).
		Update("is_hidden", true).Error
}
