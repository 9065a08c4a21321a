package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommunityHandler handles HTTP requests related to community alerts
type CommunityHandler struct {
	alertRepository        repositories.AlertRepository
	verificationRepository repositories.VerificationRepository
	userRepository         repositories.UserRepository
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(alertRepo repositories.AlertRepository, verificationRepo repositories.VerificationRepository, userRepo repositories.UserRepository) *CommunityHandler {
	return &CommunityHandler{
		alertRepository:        alertRepo,
		verificationRepository: verificationRepo,
		userRepository:         userRepo,
	}
}

// RegisterCommunityRoutes registers community alert routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/community/alerts", h.CreateAlert)
	g.GET("/community/alerts", h.GetAlerts)
	g.POST("/community/alerts/:id/verify", h.VerifyAlert)
}

// EnrichedAlert includes author info and the verification count
type EnrichedAlert struct {
	models.CommunityAlert
	Author            models.UserCompact `json:"author"`
	VerificationCount int64              `json:"verification_count"`
}

// CreateAlert creates a new community alert authored by the caller
func (h *CommunityHandler) CreateAlert(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	alert := &models.CommunityAlert{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Severity:    req.Severity,
		AuthorID:    userID,
	}
	if err := h.alertRepository.CreateAlert(alert); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, EnrichedAlert{
		CommunityAlert: *alert,
		Author:         h.authorCompact(alert.AuthorID),
	})
}

// GetAlerts retrieves all alerts, newest first, with author and
// verification count
func (h *CommunityHandler) GetAlerts(c echo.Context) error {
	alerts, err := h.alertRepository.GetAllAlerts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]EnrichedAlert, len(alerts))
	authorCache := make(map[string]models.UserCompact)
	for i, alert := range alerts {
		author, ok := authorCache[alert.AuthorID]
		if !ok {
			author = h.authorCompact(alert.AuthorID)
			authorCache[alert.AuthorID] = author
		}
		count, err := h.alertRepository.GetVerificationCount(alert.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		enriched[i] = EnrichedAlert{CommunityAlert: alert, Author: author, VerificationCount: count}
	}

	return c.JSON(http.StatusOK, enriched)
}

// VerifyAlert records the caller's endorsement of an alert and bumps the
// alert author's trust score. The verification row is upserted per
// (user, alert), but the trust increment runs on every call; repeat
// verifications by the same user keep incrementing.
func (h *CommunityHandler) VerifyAlert(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	alertID := c.Param("id")

	alert, err := h.alertRepository.GetAlertByID(alertID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Alert with ID "+alertID+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	verification, err := h.verificationRepository.UpsertVerification(userID, alertID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.IncrementTrustScore(alert.AuthorID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, verification)
}

func (h *CommunityHandler) authorCompact(userID string) models.UserCompact {
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return models.UserCompact{ID: userID}
	}
	return user.ToCompact()
}
