package handlers

import (
	"fmt"
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles the embedded comment sequence of posts.
type CommentHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:postId/comments", h.AddComment)
	g.GET("/:postId/comments", h.GetComments)
}

// AddComment appends a comment to the post's comment sequence. Username and
// avatar are snapshotted from the commenter at comment time.
func (h *CommentHandler) AddComment(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("postId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(ctx, req.UserID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := models.Comment{
		UserID:   req.UserID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Comment:  req.Comment,
	}
	post.Comments = append(post.Comments, comment)

	if err := h.postRepository.ReplacePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != req.UserID {
		notif := &models.Notification{
			Sender:   req.UserID,
			Receiver: post.UserID,
			Type:     models.NotificationComment,
			Message:  fmt.Sprintf("%s commented on your post", user.Username),
			PostID:   postID,
		}
		_ = h.notificationRepository.CreateNotification(ctx, notif)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment added successfully", "comment": comment})
}

// GetComments returns the post's comment sequence in insertion order.
func (h *CommentHandler) GetComments(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post.Comments)
}
