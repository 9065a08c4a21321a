package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommunityHandler(db *gorm.DB) *CommunityHandler {
	return NewCommunityHandler(
		repositories.NewPostgresAlertRepository(db),
		repositories.NewPostgresVerificationRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
}

func createTestAlert(t *testing.T, db *gorm.DB, authorID string) *models.CommunityAlert {
	t.Helper()
	alert := &models.CommunityAlert{
		Type:      "DANGER",
		Title:     "Scattered glass on the trail",
		Latitude:  37.9838,
		Longitude: 23.7275,
		AuthorID:  authorID,
	}
	require.NoError(t, db.Create(alert).Error)
	return alert
}

func TestCreateAlert(t *testing.T) {
	db := setupTestDB(t)
	h := newCommunityHandler(db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")

	body := `{"type":"DANGER","title":"Loose dog near the park","latitude":37.98,"longitude":23.72,"severity":4}`
	c, rec := newTestContext(e, http.MethodPost, body, author.ID)

	require.NoError(t, h.CreateAlert(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "DANGER", resp["type"])
	assert.Equal(t, author.ID, resp["author_id"])

	var count int64
	db.Model(&models.CommunityAlert{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateAlertRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	h := newCommunityHandler(db)
	e := newTestEcho()

	body := `{"type":"GOSSIP","title":"x","latitude":0,"longitude":0}`
	c, _ := newTestContext(e, http.MethodPost, body, "some-user")

	err := h.CreateAlert(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestVerifyAlertNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := newCommunityHandler(db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")

	c, _ := newTestContext(e, http.MethodPost, "", "verifier-1")
	c.SetParamNames("id")
	c.SetParamValues("does-not-exist")

	err := h.VerifyAlert(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	// no trust-score mutation on a missing alert
	var refreshed models.User
	require.NoError(t, db.First(&refreshed, "id = ?", author.ID).Error)
	assert.Equal(t, 0, refreshed.TrustScore)
}

func TestVerifyAlertIncrementsAuthorTrustScore(t *testing.T) {
	db := setupTestDB(t)
	h := newCommunityHandler(db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	alert := createTestAlert(t, db, author.ID)

	c, rec := newTestContext(e, http.MethodPost, "", "verifier-1")
	c.SetParamNames("id")
	c.SetParamValues(alert.ID)

	require.NoError(t, h.VerifyAlert(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "verifier-1", resp["user_id"])
	assert.Equal(t, alert.ID, resp["alert_id"])
	assert.Equal(t, true, resp["is_valid"])

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, "id = ?", author.ID).Error)
	assert.Equal(t, 1, refreshed.TrustScore)
}

// Re-verifying keeps a single verification row but bumps the author's trust
// score again on every call.
func TestVerifyAlertTwiceKeepsOneRowButIncrementsTwice(t *testing.T) {
	db := setupTestDB(t)
	h := newCommunityHandler(db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	alert := createTestAlert(t, db, author.ID)

	for i := 0; i < 2; i++ {
		c, _ := newTestContext(e, http.MethodPost, "", "verifier-1")
		c.SetParamNames("id")
		c.SetParamValues(alert.ID)
		require.NoError(t, h.VerifyAlert(c))
	}

	var verificationCount int64
	db.Model(&models.Verification{}).Where("alert_id = ?", alert.ID).Count(&verificationCount)
	assert.Equal(t, int64(1), verificationCount)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, "id = ?", author.ID).Error)
	assert.Equal(t, 2, refreshed.TrustScore)
}

func TestGetAlertsIncludesAuthorAndVerificationCount(t *testing.T) {
	db := setupTestDB(t)
	h := newCommunityHandler(db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	alert := createTestAlert(t, db, author.ID)
	require.NoError(t, db.Create(&models.Verification{UserID: "verifier-1", AlertID: alert.ID, IsValid: true}).Error)

	c, rec := newTestContext(e, http.MethodGet, "", "")
	require.NoError(t, h.GetAlerts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var alerts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, float64(1), alerts[0]["verification_count"])
	assert.Equal(t, "Alice", alerts[0]["author"].(map[string]any)["name"])
}
