package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// SpotRepository defines the interface for spot data operations
type SpotRepository interface {
	CreateSpot(spot *models.Spot) error
	GetSpots() ([]models.Spot, error)
}

// PostgresSpotRepository implements SpotRepository for PostgreSQL
type PostgresSpotRepository struct {
	db *gorm.DB
}

// NewPostgresSpotRepository creates a new PostgresSpotRepository
func NewPostgresSpotRepository(db *gorm.DB) *PostgresSpotRepository {
	return &PostgresSpotRepository{db: db}
}

// CreateSpot creates a new spot
func (r *PostgresSpotRepository) CreateSpot(spot *models.Spot) error {
	return r.db.Create(spot).Error
}

// GetSpots retrieves all spots
func (r *PostgresSpotRepository) GetSpots() ([]models.Spot, error) {
	var spots []models.Spot
	if err := r.db.Find(&spots).Error; err != nil {
		return nil, err
	}
	return spots, nil
}
