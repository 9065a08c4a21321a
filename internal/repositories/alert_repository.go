package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// AlertRepository defines the interface for community alert operations
type AlertRepository interface {
	CreateAlert(alert *models.CommunityAlert) error
	GetAlertByID(id string) (*models.CommunityAlert, error)
	GetAllAlerts() ([]models.CommunityAlert, error)
	GetVerificationCount(alertID string) (int64, error)
}

// PostgresAlertRepository implements AlertRepository for PostgreSQL
type PostgresAlertRepository struct {
	db *gorm.DB
}

// NewPostgresAlertRepository creates a new PostgresAlertRepository
func NewPostgresAlertRepository(db *gorm.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

// CreateAlert creates a new community alert
func (r *PostgresAlertRepository) CreateAlert(alert *models.CommunityAlert) error {
	return r.db.Create(alert).Error
}

// GetAlertByID retrieves an alert by ID
func (r *PostgresAlertRepository) GetAlertByID(id string) (*models.CommunityAlert, error) {
	var alert models.CommunityAlert
	if err := r.db.First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// GetAllAlerts retrieves all alerts, newest first
func (r *PostgresAlertRepository) GetAllAlerts() ([]models.CommunityAlert, error) {
	var alerts []models.CommunityAlert
	if err := r.db.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetVerificationCount retrieves the number of verifications for an alert
func (r *PostgresAlertRepository) GetVerificationCount(alertID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Verification{}).Where("alert_id = ?", alertID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
