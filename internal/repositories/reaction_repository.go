package repositories

import (
	"fmt"

	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for post reaction operations
type ReactionRepository interface {
	CreateReaction(reaction *models.SocialPostReaction) error
	DeleteReaction(postID, userID string) error
	GetReaction(postID, userID string) (*models.SocialPostReaction, error)
	GetReactionsCountByPostID(postID string) (int64, error)
	HasUserReacted(postID, userID string) (bool, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction creates a new reaction
func (r *PostgresReactionRepository) CreateReaction(reaction *models.SocialPostReaction) error {
	return r.db.Create(reaction).Error
}

// DeleteReaction deletes a reaction for a (post, user) pair
func (r *PostgresReactionRepository) DeleteReaction(postID, userID string) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.SocialPostReaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reaction not found")
	}
	return nil
}

// GetReaction retrieves a reaction for a (post, user) pair
func (r *PostgresReactionRepository) GetReaction(postID, userID string) (*models.SocialPostReaction, error) {
	var reaction models.SocialPostReaction
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetReactionsCountByPostID retrieves the reaction count for a post
func (r *PostgresReactionRepository) GetReactionsCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.SocialPostReaction{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserReacted checks whether a user has reacted to a post
func (r *PostgresReactionRepository) HasUserReacted(postID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.SocialPostReaction{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
