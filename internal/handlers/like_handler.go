package handlers

import (
	"fmt"
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like/dislike reactions on posts. The two reaction
// sets are mutually exclusive per user: adding one removes the other first.
type LikeHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers reaction routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.PUT("/:id/like/:userId", h.LikePost)
	g.PUT("/:id/dislike/:userId", h.DislikePost)
}

// LikePost adds the user to the post's likes set. A duplicate like is a
// conflict and leaves the counts unchanged.
func (h *LikeHandler) LikePost(c echo.Context) error {
	post, user, err := h.loadPostAndUser(c, c.Param("id"), c.Param("userId"))
	if err != nil {
		return err
	}

	userID := user.ID.Hex()
	if models.HasReaction(post.Likes, userID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already liked this post"})
	}

	post.Dislikes = models.RemoveReaction(post.Dislikes, userID)
	post.Likes = append(post.Likes, userID)

	if err := h.postRepository.ReplacePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifyOwner(c, post, user, models.NotificationLike, fmt.Sprintf("%s liked your post", user.Username))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "The post has been liked",
		"like":    len(post.Likes),
		"dislike": len(post.Dislikes),
	})
}

// DislikePost is symmetric to LikePost on the dislikes set.
func (h *LikeHandler) DislikePost(c echo.Context) error {
	post, user, err := h.loadPostAndUser(c, c.Param("id"), c.Param("userId"))
	if err != nil {
		return err
	}

	userID := user.ID.Hex()
	if models.HasReaction(post.Dislikes, userID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already disliked this post"})
	}

	post.Likes = models.RemoveReaction(post.Likes, userID)
	post.Dislikes = append(post.Dislikes, userID)

	if err := h.postRepository.ReplacePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifyOwner(c, post, user, models.NotificationDislike, fmt.Sprintf("%s disliked your post", user.Username))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "The post has been disliked",
		"like":    len(post.Likes),
		"dislike": len(post.Dislikes),
	})
}

func (h *LikeHandler) loadPostAndUser(c echo.Context, postID, userID string) (*models.Post, *models.User, error) {
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return post, user, nil
}

// notifyOwner records a notification for the post owner unless the actor is
// the owner. The write is best-effort: a failure here does not undo the
// reaction already persisted.
func (h *LikeHandler) notifyOwner(c echo.Context, post *models.Post, actor *models.User, notifType, message string) {
	if actor.ID.Hex() == post.UserID {
		return
	}

	notif := &models.Notification{
		Sender:   actor.ID.Hex(),
		Receiver: post.UserID,
		Type:     notifType,
		Message:  message,
		PostID:   post.ID.Hex(),
	}
	_ = h.notificationRepository.CreateNotification(c.Request().Context(), notif)
}
