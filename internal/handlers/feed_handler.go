package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/cache"
	"github.com/labstack/echo/v4"
)

const feedCacheTTL = 30 * time.Second

// FeedHandler assembles post timelines from a user's friendship graph.
type FeedHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/friendsposts/:userid", h.FriendsPosts)
	g.GET("/allposts/:userid", h.AllPosts)
	g.GET("/timeline/:userId", h.Timeline)
}

// FriendsPosts returns the posts of the user's mutual friends in a single
// $in query over the followers id set. No friends is an empty result, not
// an error.
func (h *FeedHandler) FriendsPosts(c echo.Context) error {
	return h.assembleFeed(c, c.Param("userid"), false)
}

// AllPosts returns the friends' posts plus the user's own.
func (h *FeedHandler) AllPosts(c echo.Context) error {
	return h.assembleFeed(c, c.Param("userid"), true)
}

func (h *FeedHandler) assembleFeed(c echo.Context, userID string, includeOwn bool) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	friendIDs := make([]string, 0, len(user.Followers)+1)
	for _, f := range user.Followers {
		friendIDs = append(friendIDs, f.ID)
	}
	if includeOwn {
		friendIDs = append(friendIDs, userID)
	}

	if len(friendIDs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "No friends found", "posts": []models.Post{}})
	}

	scope := "friends"
	if includeOwn {
		scope = "all"
	}
	key := fmt.Sprintf("feed:%s:%s", scope, userID)

	var posts []models.Post
	err = cache.CacheAside(ctx, key, &posts, feedCacheTTL, func() error {
		var ferr error
		posts, ferr = h.postRepository.GetPostsByUserIDs(ctx, friendIDs)
		return ferr
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Posts retrieved successfully", "posts": posts})
}

// Timeline concatenates the user's own posts with one per-friend query over
// the legacy followings relation. Nothing writes followings, so in practice
// the aggregation contributes only the user's own posts.
func (h *FeedHandler) Timeline(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, c.Param("userId"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByUserID(ctx, user.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, friendID := range user.Followings {
		friendPosts, err := h.postRepository.GetPostsByUserID(ctx, friendID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		posts = append(posts, friendPosts...)
	}

	return c.JSON(http.StatusOK, posts)
}
