package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/pawtrail/pawtrail/backend/internal/repositories"
	"gorm.io/gorm"
)

const (
	feedPostLimit    = 50
	feedCommentLimit = 10
	hideReportCount  = 3
	maxUploadBytes   = 5 << 20
)

// SocialHandler handles HTTP requests for the social feed
type SocialHandler struct {
	postRepository     repositories.SocialPostRepository
	commentRepository  repositories.SocialCommentRepository
	reactionRepository repositories.ReactionRepository
	activityRepository repositories.ActivityRepository
	userRepository     repositories.UserRepository
	uploadDir          string
}

// NewSocialHandler creates a new SocialHandler
func NewSocialHandler(
	postRepo repositories.SocialPostRepository,
	commentRepo repositories.SocialCommentRepository,
	reactionRepo repositories.ReactionRepository,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	uploadDir string,
) *SocialHandler {
	return &SocialHandler{
		postRepository:     postRepo,
		commentRepository:  commentRepo,
		reactionRepository: reactionRepo,
		activityRepository: activityRepo,
		userRepository:     userRepo,
		uploadDir:          uploadDir,
	}
}

// RegisterSocialRoutes registers social feed routes
func (h *SocialHandler) RegisterSocialRoutes(g *echo.Group) {
	g.GET("/social/posts", h.GetPosts)
	g.POST("/social/posts", h.CreatePost)
	g.POST("/social/posts/:id/comments", h.AddComment)
	g.POST("/social/posts/:id/react", h.ReactToPost)
	g.POST("/social/posts/:id/report", h.ReportPost)
	g.POST("/social/uploads", h.UploadImage)
}

// EnrichedComment includes the comment author
type EnrichedComment struct {
	models.SocialPostComment
	Author models.UserCompact `json:"author"`
}

// FeedPost is one entry of the social feed response
type FeedPost struct {
	models.SocialPost
	Author           models.UserCompact `json:"author"`
	Comments         []EnrichedComment  `json:"comments"`
	CommentsCount    int64              `json:"comments_count"`
	ReactionsCount   int64              `json:"reactions_count"`
	ViewerHasReacted bool               `json:"viewer_has_reacted"`
}

// CreatePost creates a new social post authored by the caller
func (h *SocialHandler) CreatePost(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.SocialPost{
		Content:  req.Content,
		ImageURL: req.ImageURL,
		AuthorID: userID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, FeedPost{
		SocialPost: *post,
		Author:     h.authorCompact(post.AuthorID),
		Comments:   []EnrichedComment{},
	})
}

// GetPosts returns the feed: non-hidden posts, newest first, capped at 50,
// each with its most recent comments and the viewer's reaction state
func (h *SocialHandler) GetPosts(c echo.Context) error {
	viewerID := currentUserID(c)

	posts, err := h.postRepository.GetVisiblePosts(feedPostLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	feed := make([]FeedPost, len(posts))
	authorCache := make(map[string]models.UserCompact)
	for i, post := range posts {
		entry, err := h.buildFeedPost(post, viewerID, authorCache)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		feed[i] = entry
	}

	return c.JSON(http.StatusOK, feed)
}

func (h *SocialHandler) buildFeedPost(post models.SocialPost, viewerID string, authorCache map[string]models.UserCompact) (FeedPost, error) {
	comments, err := h.commentRepository.GetRecentCommentsByPostID(post.ID, feedCommentLimit)
	if err != nil {
		return FeedPost{}, err
	}
	enrichedComments := make([]EnrichedComment, len(comments))
	for i, comment := range comments {
		enrichedComments[i] = EnrichedComment{
			SocialPostComment: comment,
			Author:            h.cachedAuthor(comment.AuthorID, authorCache),
		}
	}

	commentsCount, err := h.commentRepository.GetCommentsCountByPostID(post.ID)
	if err != nil {
		return FeedPost{}, err
	}
	reactionsCount, err := h.reactionRepository.GetReactionsCountByPostID(post.ID)
	if err != nil {
		return FeedPost{}, err
	}

	viewerReacted := false
	if viewerID != "" {
		viewerReacted, err = h.reactionRepository.HasUserReacted(post.ID, viewerID)
		if err != nil {
			return FeedPost{}, err
		}
	}

	return FeedPost{
		SocialPost:       post,
		Author:           h.cachedAuthor(post.AuthorID, authorCache),
		Comments:         enrichedComments,
		CommentsCount:    commentsCount,
		ReactionsCount:   reactionsCount,
		ViewerHasReacted: viewerReacted,
	}, nil
}

// AddComment creates a comment and notifies the post author
func (h *SocialHandler) AddComment(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post with ID "+postID+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.SocialPostComment{
		PostID:   postID,
		AuthorID: userID,
		Text:     req.Text,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// no self-notifications
	if userID != post.AuthorID {
		activity := &models.SocialActivity{
			RecipientID: post.AuthorID,
			ActorID:     userID,
			PostID:      postID,
			Type:        models.ActivityComment,
		}
		if err := h.activityRepository.CreateActivity(activity); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, EnrichedComment{
		SocialPostComment: *comment,
		Author:            h.authorCompact(userID),
	})
}

// ReactToPost toggles the caller's like on a post. Creating a reaction on
// someone else's post notifies the author; removing one does not.
func (h *SocialHandler) ReactToPost(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post with ID "+postID+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	_, err = h.reactionRepository.GetReaction(postID, userID)
	if err == nil {
		if err := h.reactionRepository.DeleteReaction(postID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}
	if err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reaction := &models.SocialPostReaction{PostID: postID, UserID: userID}
	if err := h.reactionRepository.CreateReaction(reaction); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if userID != post.AuthorID {
		activity := &models.SocialActivity{
			RecipientID: post.AuthorID,
			ActorID:     userID,
			PostID:      postID,
			Type:        models.ActivityReaction,
		}
		if err := h.activityRepository.CreateActivity(activity); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": true})
}

// ReportPost increments a post's report counter and hides the post once the
// counter reaches the threshold. Hiding never reverts here. The route takes
// no caller identity.
func (h *SocialHandler) ReportPost(c echo.Context) error {
	postID := c.Param("id")

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post with ID "+postID+" not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.IncrementReportCount(postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.ReportCount >= hideReportCount && !post.IsHidden {
		if err := h.postRepository.HidePost(postID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		post.IsHidden = true
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":           post.ID,
		"report_count": post.ReportCount,
		"is_hidden":    post.IsHidden,
	})
}

// UploadImage stores a feed image on disk and returns its public URL
func (h *SocialHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	if file.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported image type")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	dir := filepath.Join(h.uploadDir, "social")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("social-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"image_url": "/uploads/social/" + filename,
		"filename":  filename,
		"size":      size,
	})
}

func (h *SocialHandler) authorCompact(userID string) models.UserCompact {
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return models.UserCompact{ID: userID}
	}
	return user.ToCompact()
}

func (h *SocialHandler) cachedAuthor(userID string, cache map[string]models.UserCompact) models.UserCompact {
	if author, ok := cache[userID]; ok {
		return author
	}
	author := h.authorCompact(userID)
	cache[userID] = author
	return author
}
