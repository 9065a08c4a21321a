package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
)

// SpotHandler handles HTTP requests related to map spots
type SpotHandler struct {
	spotRepository repositories.SpotRepository
}

// NewSpotHandler creates a new SpotHandler
func NewSpotHandler(spotRepo repositories.SpotRepository) *SpotHandler {
	return &SpotHandler{spotRepository: spotRepo}
}

// RegisterSpotRoutes registers spot-related routes
func (h *SpotHandler) RegisterSpotRoutes(g *echo.Group) {
	g.GET("/spots", h.GetSpots)
	g.POST("/spots", h.CreateSpot)
}

// GetSpots retrieves all spots
func (h *SpotHandler) GetSpots(c echo.Context) error {
	spots, err := h.spotRepository.GetSpots()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, spots)
}

// CreateSpot creates a new spot
func (h *SpotHandler) CreateSpot(c echo.Context) error {
	var req models.CreateSpotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	spotType := req.Type
	if spotType == "" {
		spotType = "DOG_PARK"
	}

	spot := &models.Spot{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Type:        spotType,
		Rating:      req.Rating,
	}
	if err := h.spotRepository.CreateSpot(spot); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, spot)
}
