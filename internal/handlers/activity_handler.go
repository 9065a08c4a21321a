package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
)

const activityPageLimit = 20

// ActivityHandler handles activity (notification) requests
type ActivityHandler struct {
	activityRepository repositories.ActivityRepository
	userRepository     repositories.UserRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repositories.ActivityRepository, userRepo repositories.UserRepository) *ActivityHandler {
	return &ActivityHandler{
		activityRepository: activityRepo,
		userRepository:     userRepo,
	}
}

// RegisterActivityRoutes registers activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/social/activity", h.GetActivity)
	g.POST("/social/activity/read-all", h.MarkAllRead)
}

// EnrichedActivity includes actor info
type EnrichedActivity struct {
	models.SocialActivity
	Actor models.UserCompact `json:"actor"`
}

// GetActivity returns the caller's 20 most recent activity records plus the
// unread count, newest first
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	activities, err := h.activityRepository.GetRecentByRecipientID(userID, activityPageLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	unreadCount, err := h.activityRepository.GetUnreadCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]EnrichedActivity, len(activities))
	actorCache := make(map[string]models.UserCompact)
	for i, activity := range activities {
		actor, ok := actorCache[activity.ActorID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(activity.ActorID); err == nil {
				actor = user.ToCompact()
			} else {
				actor = models.UserCompact{ID: activity.ActorID}
			}
			actorCache[activity.ActorID] = actor
		}
		enriched[i] = EnrichedActivity{SocialActivity: activity, Actor: actor}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":        enriched,
		"unread_count": unreadCount,
	})
}

// MarkAllRead marks all of the caller's unread activity as read
func (h *ActivityHandler) MarkAllRead(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	if err := h.activityRepository.MarkAllAsRead(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
