package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSocialHandler(t *testing.T, db *gorm.DB) *SocialHandler {
	t.Helper()
	return NewSocialHandler(
		repositories.NewPostgresSocialPostRepository(db),
		repositories.NewPostgresSocialCommentRepository(db),
		repositories.NewPostgresReactionRepository(db),
		repositories.NewPostgresActivityRepository(db),
		repositories.NewPostgresUserRepository(db),
		t.TempDir(),
	)
}

func createTestPost(t *testing.T, db *gorm.DB, authorID, content string) *models.SocialPost {
	t.Helper()
	post := &models.SocialPost{Content: content, AuthorID: authorID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func postContext(e *echo.Echo, body, userID, postID string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(e, http.MethodPost, body, userID)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	return c, rec
}

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")

	c, rec := newTestContext(e, http.MethodPost, `{"content":"First walk of the day"}`, author.ID)
	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "First walk of the day", resp["content"])
	assert.Equal(t, author.ID, resp["author_id"])
	assert.Equal(t, "Alice", resp["author"].(map[string]any)["name"])
}

func TestCreatePostRejectsShortContent(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()

	c, _ := newTestContext(e, http.MethodPost, `{"content":"x"}`, "user-1")
	err := h.CreatePost(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestReactToPostToggles(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	viewer := createTestUser(t, db, "Bob", "bob@example.com")
	post := createTestPost(t, db, author.ID, "Look at this trail")

	c, rec := postContext(e, "", viewer.ID, post.ID)
	require.NoError(t, h.ReactToPost(c))
	assert.Equal(t, true, decodeBody(t, rec)["liked"])

	c, rec = postContext(e, "", viewer.ID, post.ID)
	require.NoError(t, h.ReactToPost(c))
	assert.Equal(t, false, decodeBody(t, rec)["liked"])

	var reactions int64
	db.Model(&models.SocialPostReaction{}).Where("post_id = ?", post.ID).Count(&reactions)
	assert.Equal(t, int64(0), reactions)

	// only the like creates an activity, not the unlike
	var activities int64
	db.Model(&models.SocialActivity{}).Where("type = ?", models.ActivityReaction).Count(&activities)
	assert.Equal(t, int64(1), activities)
}

func TestReactToOwnPostCreatesNoActivity(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	post := createTestPost(t, db, author.ID, "Self promotion")

	c, rec := postContext(e, "", author.ID, post.ID)
	require.NoError(t, h.ReactToPost(c))
	assert.Equal(t, true, decodeBody(t, rec)["liked"])

	var activities int64
	db.Model(&models.SocialActivity{}).Count(&activities)
	assert.Equal(t, int64(0), activities)
}

func TestAddCommentNotifiesPostAuthor(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	commenter := createTestUser(t, db, "Bob", "bob@example.com")
	post := createTestPost(t, db, author.ID, "Anyone been to the new park?")

	c, rec := postContext(e, `{"text":"Yes, highly recommend it"}`, commenter.ID, post.ID)
	require.NoError(t, h.AddComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "Yes, highly recommend it", resp["text"])
	assert.Equal(t, "Bob", resp["author"].(map[string]any)["name"])

	var activity models.SocialActivity
	require.NoError(t, db.First(&activity).Error)
	assert.Equal(t, author.ID, activity.RecipientID)
	assert.Equal(t, commenter.ID, activity.ActorID)
	assert.Equal(t, models.ActivityComment, activity.Type)
	assert.False(t, activity.IsRead)
}

func TestAddCommentOnOwnPostCreatesNoActivity(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	post := createTestPost(t, db, author.ID, "Talking to myself")

	c, _ := postContext(e, `{"text":"Indeed"}`, author.ID, post.ID)
	require.NoError(t, h.AddComment(c))

	var activities int64
	db.Model(&models.SocialActivity{}).Count(&activities)
	assert.Equal(t, int64(0), activities)
}

func TestAddCommentPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()

	c, _ := postContext(e, `{"text":"hello"}`, "user-1", "missing-post")
	err := h.AddComment(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

// The third report hides the post; later reports keep counting but the post
// stays hidden.
func TestReportPostHidesAtThreshold(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	post := createTestPost(t, db, author.ID, "Borderline content")

	for i := 1; i <= 2; i++ {
		c, rec := postContext(e, "", "", post.ID)
		require.NoError(t, h.ReportPost(c))
		resp := decodeBody(t, rec)
		assert.Equal(t, float64(i), resp["report_count"])
		assert.Equal(t, false, resp["is_hidden"])
	}

	c, rec := postContext(e, "", "", post.ID)
	require.NoError(t, h.ReportPost(c))
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(3), resp["report_count"])
	assert.Equal(t, true, resp["is_hidden"])

	c, rec = postContext(e, "", "", post.ID)
	require.NoError(t, h.ReportPost(c))
	resp = decodeBody(t, rec)
	assert.Equal(t, float64(4), resp["report_count"])
	assert.Equal(t, true, resp["is_hidden"])
}

func TestGetPostsExcludesHiddenPosts(t *testing.T) {
	db := setupTestDB(t)
	h := newSocialHandler(t, db)
	e := newTestEcho()
	author := createTestUser(t, db, "Alice", "alice@example.com")
	viewer := createTestUser(t, db, "Bob", "bob@example.com")

	visible := createTestPost(t, db, author.ID, "Still up")
	hidden := createTestPost(t, db, author.ID, "Taken down")
	require.NoError(t, db.Model(hidden).UpdateColumn("is_hidden", true).Error)

	require.NoError(t, db.Create(&models.SocialPostReaction{PostID: visible.ID, UserID: viewer.ID}).Error)
	require.NoError(t, db.Create(&models.SocialPostComment{PostID: visible.ID, AuthorID: viewer.ID, Text: "Nice"}).Error)

	c, rec := newTestContext(e, http.MethodGet, "", viewer.ID)
	require.NoError(t, h.GetPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var feed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, visible.ID, feed[0]["id"])
	assert.Equal(t, true, feed[0]["viewer_has_reacted"])
	assert.Equal(t, float64(1), feed[0]["reactions_count"])
	assert.Equal(t, float64(1), feed[0]["comments_count"])
	comments := feed[0]["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "Nice", comments[0].(map[string]any)["text"])
}
