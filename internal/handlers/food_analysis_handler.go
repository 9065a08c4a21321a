package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"github.com/pawtrail/pawtrail/backend/pkg/gemini"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxAnalysisImageBytes = 10 << 20

// FoodAnalysisHandler handles food-label analysis requests
type FoodAnalysisHandler struct {
	petRepository      repositories.PetRepository
	analysisRepository repositories.FoodAnalysisRepository
	gemini             *gemini.Client
	uploadDir          string
	logger             *logrus.Logger
}

// NewFoodAnalysisHandler creates a new FoodAnalysisHandler
func NewFoodAnalysisHandler(
	petRepo repositories.PetRepository,
	analysisRepo repositories.FoodAnalysisRepository,
	geminiClient *gemini.Client,
	uploadDir string,
	logger *logrus.Logger,
) *FoodAnalysisHandler {
	return &FoodAnalysisHandler{
		petRepository:      petRepo,
		analysisRepository: analysisRepo,
		gemini:             geminiClient,
		uploadDir:          uploadDir,
		logger:             logger,
	}
}

// RegisterFoodAnalysisRoutes registers food analysis routes
func (h *FoodAnalysisHandler) RegisterFoodAnalysisRoutes(g *echo.Group) {
	g.POST("/food-analysis/:pet_id", h.AnalyzeFood)
}

// AnalyzeFood accepts a label image, runs it through Gemini and stores the
// normalized result. One best-effort upstream call; its failure surfaces as
// a bad-gateway error.
func (h *FoodAnalysisHandler) AnalyzeFood(c echo.Context) error {
	petID := c.Param("pet_id")

	if _, err := h.petRepository.GetPetByID(petID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Pet with ID "+petID+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	if file.Size > maxAnalysisImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 10MB limit")
	}
	mimeType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	filename, err := h.saveImage(file.Filename, imageData)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rawText, err := h.gemini.AnalyzeImage(c.Request().Context(), imageData, mimeType)
	if err != nil {
		if errors.Is(err, gemini.ErrUnconfigured) {
			return echo.NewHTTPError(http.StatusInternalServerError, gemini.ErrUnconfigured.Error())
		}
		h.logger.WithError(err).Error("Gemini request failed")
		return echo.NewHTTPError(http.StatusBadGateway, "Gemini analysis failed: "+err.Error())
	}

	result, err := gemini.ParseAnalysisResult(rawText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse Gemini response")
		return echo.NewHTTPError(http.StatusBadGateway, "Gemini analysis failed: "+err.Error())
	}

	analysis := &models.FoodAnalysis{
		PetID:    petID,
		PhotoURL: "/uploads/" + filename,
		Result:   *result,
	}
	if err := h.analysisRepository.CreateAnalysis(c.Request().Context(), analysis); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, analysis)
}

func (h *FoodAnalysisHandler) saveImage(originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	ext := filepath.Ext(originalName)
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	if err := os.WriteFile(filepath.Join(h.uploadDir, filename), data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
