package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// VerificationRepository defines the interface for alert verifications
type VerificationRepository interface {
	UpsertVerification(userID, alertID string) (*models.Verification, error)
}

// PostgresVerificationRepository implements VerificationRepository for PostgreSQL
type PostgresVerificationRepository struct {
	db *gorm.DB
}

// NewPostgresVerificationRepository creates a new PostgresVerificationRepository
func NewPostgresVerificationRepository(db *gorm.DB) *PostgresVerificationRepository {
	return &PostgresVerificationRepository{db: db}
}

// UpsertVerification records that a user vouches for an alert. A user can
// verify a given alert at most once; re-verifying marks the existing row
// valid instead of duplicating it.
func (r *PostgresVerificationRepository) UpsertVerification(userID, alertID string) (*models.Verification, error) {
	var verification models.Verification
	err := r.db.Where("user_id = ? AND alert_id = ?", userID, alertID).First(&verification).Error
	if err == nil {
		if !verification.IsValid {
			if err := r.db.Model(&verification).Update("is_valid", true).Error; err != nil {
				return nil, err
			}
			verification.IsValid = true
		}
		return &verification, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	verification = models.Verification{UserID: userID, AlertID: alertID, IsValid: true}
	if err := r.db.Create(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}
