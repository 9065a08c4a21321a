package repositories

import (
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"gorm.io/gorm"
)

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	CreatePet(pet *models.Pet) error
	GetPets() ([]models.Pet, error)
	GetPetByID(id string) (*models.Pet, error)
	CreateHealthRecord(record *models.HealthRecord) error
}

// PostgresPetRepository implements PetRepository for PostgreSQL
type PostgresPetRepository struct {
	db *gorm.DB
}

// NewPostgresPetRepository creates a new PostgresPetRepository
func NewPostgresPetRepository(db *gorm.DB) *PostgresPetRepository {
	return &PostgresPetRepository{db: db}
}

// CreatePet creates a new pet
func (r *PostgresPetRepository) CreatePet(pet *models.Pet) error {
	return r.db.Create(pet).Error
}

// GetPets retrieves all pets
func (r *PostgresPetRepository) GetPets() ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.Order("created_at DESC").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// GetPetByID retrieves a pet with its health records
func (r *PostgresPetRepository) GetPetByID(id string) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.Preload("HealthRecords").First(&pet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// CreateHealthRecord adds a health record to a pet
func (r *PostgresPetRepository) CreateHealthRecord(record *models.HealthRecord) error {
	return r.db.Create(record).Error
}
