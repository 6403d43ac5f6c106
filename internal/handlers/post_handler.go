package handlers

import (
	"fmt"
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/cache"
	"github.com/aminebkr/linkup-backend/pkg/uploads"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post creation and owner-only mutation.
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	uploadDir      string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, uploadDir string) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		uploadDir:      uploadDir,
	}
}

// RegisterPostRoutes registers post CRUD routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("", h.CreatePost)
	g.PUT("/:id", h.UpdatePost)
	g.DELETE("/:id", h.DeletePost)
	g.GET("/user/:userid", h.GetUserPosts)
	g.GET("/profile/:id", h.GetProfilePosts)
}

// CreatePost creates a post from a multipart form. Image files arrive under
// the "uploads" field; their stored filenames are recorded on the post.
func (h *PostHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.FormValue("userId")
	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	var imgs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["uploads"] {
			name, err := uploads.SaveFile(h.uploadDir, file)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store upload")
			}
			imgs = append(imgs, name)
		}
	}

	post := &models.Post{
		UserID:         userID,
		Desc:           c.FormValue("desc"),
		Username:       user.Username,
		ProfilePicture: user.Avatar,
		Imgs:           imgs,
		TagsFriends:    formValues(c, "tagsFriends"),
		Location:       c.FormValue("location"),
		Feeling:        c.FormValue("feeling"),
	}

	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	cache.Invalidate(ctx, fmt.Sprintf("feed:all:%s", userID))

	return c.JSON(http.StatusCreated, post)
}

func formValues(c echo.Context, field string) []string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.Value[field]
}

// UpdatePost lets the owner edit a post. A caller who does not own the post
// is rejected.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Post not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != req.UserID {
		return c.JSON(http.StatusForbidden, "You can update only your post")
	}

	if err := h.postRepository.UpdatePost(ctx, postID, &req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cache.Invalidate(ctx, fmt.Sprintf("feed:all:%s", post.UserID))

	return c.JSON(http.StatusOK, "The post has been updated")
}

// DeletePost removes a post.
func (h *PostHandler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cache.Invalidate(ctx, fmt.Sprintf("feed:all:%s", post.UserID))

	return c.JSON(http.StatusOK, "The post has been deleted")
}

// GetUserPosts returns the posts owned by a user.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userid")

	if _, err := h.userRepository.GetUserByID(ctx, userID); err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByUserID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Posts retrieved successfully", "posts": posts})
}

// GetProfilePosts returns a profile's posts as a bare array.
func (h *PostHandler) GetProfilePosts(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("id")

	if _, err := h.userRepository.GetUserByID(ctx, userID); err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByUserID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, posts)
}
