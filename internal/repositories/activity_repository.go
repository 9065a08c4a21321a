package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for social activity operations
type ActivityRepository interface {
	CreateActivity(activity *models.SocialActivity) error
	GetRecentByRecipientID(recipientID string, limit int) ([]models.SocialActivity, error)
	GetUnreadCount(recipientID string) (int64, error)
	MarkAllAsRead(recipientID string) error
}

type postgresActivityRepository struct {
	db *gorm.DB
}

func NewPostgresActivityRepository(db *gorm.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) CreateActivity(activity *models.SocialActivity) error {
	return r.db.Create(activity).Error
}

func (r *postgresActivityRepository) GetRecentByRecipientID(recipientID string, limit int) ([]models.SocialActivity, error) {
	var activities []models.SocialActivity
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *postgresActivityRepository) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SocialActivity{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

func (r *postgresActivityRepository) MarkAllAsRead(recipientID string) error {
	return r.db.Model(&models.SocialActivity{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
