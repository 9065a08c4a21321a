package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"gorm.io/gorm"
)

// PetHandler handles HTTP requests related to pets
type PetHandler struct {
	petRepository      repositories.PetRepository
	analysisRepository repositories.FoodAnalysisRepository
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petRepo repositories.PetRepository, analysisRepo repositories.FoodAnalysisRepository) *PetHandler {
	return &PetHandler{
		petRepository:      petRepo,
		analysisRepository: analysisRepo,
	}
}

// RegisterPetRoutes registers pet-related routes
func (h *PetHandler) RegisterPetRoutes(g *echo.Group) {
	g.GET("/pets", h.GetPets)
	g.GET("/pets/:id", h.GetPet)
	g.POST("/pets", h.CreatePet)
	g.POST("/pets/:id/health-records", h.AddHealthRecord)
}

// PetDetail includes the pet's food analyses alongside its base record
type PetDetail struct {
	models.Pet
	FoodAnalyses []models.FoodAnalysis `json:"food_analyses"`
}

// GetPets retrieves all pets
func (h *PetHandler) GetPets(c echo.Context) error {
	pets, err := h.petRepository.GetPets()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pets)
}

// GetPet retrieves a pet with its health records and food analyses
func (h *PetHandler) GetPet(c echo.Context) error {
	id := c.Param("id")

	pet, err := h.petRepository.GetPetByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Pet with ID "+id+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	analyses, err := h.analysisRepository.GetAnalysesByPetID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if analyses == nil {
		analyses = []models.FoodAnalysis{}
	}

	return c.JSON(http.StatusOK, PetDetail{Pet: *pet, FoodAnalyses: analyses})
}

// CreatePet creates a new pet
func (h *PetHandler) CreatePet(c echo.Context) error {
	var req models.CreatePetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet := &models.Pet{
		Name:    req.Name,
		Type:    req.Type,
		Breed:   req.Breed,
		Weight:  req.Weight,
		OwnerID: req.OwnerID,
	}
	if req.Birthday != "" {
		birthday, err := parseDate(req.Birthday)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid birthday format")
		}
		pet.Birthday = &birthday
	}

	if err := h.petRepository.CreatePet(pet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, pet)
}

// AddHealthRecord attaches a health record to a pet
func (h *PetHandler) AddHealthRecord(c echo.Context) error {
	petID := c.Param("id")

	if _, err := h.petRepository.GetPetByID(petID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Pet with ID "+petID+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.CreateHealthRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format")
	}

	record := &models.HealthRecord{
		PetID: petID,
		Title: req.Title,
		Notes: req.Notes,
		Date:  date,
	}
	if err := h.petRepository.CreateHealthRecord(record); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, record)
}

// parseDate accepts RFC3339 timestamps or plain dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
