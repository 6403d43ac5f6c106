package handlers

import (
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/uploads"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles profile reads and the profile-edit cascade.
type UserHandler struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	messageRepository repositories.MessageRepository
	uploadDir         string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, msgRepo repositories.MessageRepository, uploadDir string) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		postRepository:    postRepo,
		messageRepository: msgRepo,
		uploadDir:         uploadDir,
	}
}

// RegisterUserRoutes registers user profile routes. Static segments are
// registered before the parameterized ones they would otherwise shadow.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/id/search", h.SearchUsers)
	g.GET("/followers/:id", h.GetFollowers)
	g.GET("/profil/:id", h.GetProfile)
	g.GET("/getuser/:id", h.GetUser)
	g.GET("/friend/:id", h.GetFriend)
	g.GET("/shared-photos/:conversationId", h.GetSharedPhotos)
	g.GET("/:id", h.GetOtherUsers)
	g.PUT("/:id", h.UpdateProfile)
}

// SearchUsers returns every user document.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.userRepository.GetAllUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error."})
	}
	return c.JSON(http.StatusOK, users)
}

// GetFollowers resolves the user's follower tuples against the live user
// documents so the response carries current usernames and avatars.
func (h *UserHandler) GetFollowers(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	ids := make([]string, 0, len(user.Followers))
	for _, f := range user.Followers {
		ids = append(ids, f.ID)
	}

	followerUsers, err := h.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	followers := make([]models.FriendRef, 0, len(followerUsers))
	for i := range followerUsers {
		followers = append(followers, followerUsers[i].Ref())
	}

	return c.JSON(http.StatusOK, echo.Map{"followers": followers})
}

// GetOtherUsers returns every user except the one with the given id.
func (h *UserHandler) GetOtherUsers(c echo.Context) error {
	users, err := h.userRepository.GetAllUsersExcept(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GetProfile returns a user document.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns a user document, 404 when unknown.
func (h *UserHandler) GetUser(c echo.Context) error {
	return h.GetProfile(c)
}

// GetFriend returns a user document wrapped in an object.
func (h *UserHandler) GetFriend(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// GetSharedPhotos lists the image attachments exchanged in a conversation.
func (h *UserHandler) GetSharedPhotos(c echo.Context) error {
	images, err := h.messageRepository.GetSharedImages(c.Request().Context(), c.Param("conversationId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error, could not fetch shared images"})
	}
	if len(images) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No shared photos found"})
	}
	return c.JSON(http.StatusOK, images)
}

// UpdateProfile edits the account fields and uploaded pictures, then
// cascades the new username/avatar snapshot to the user's posts and to the
// follower tuples that reference them. The cascade is sequential writes
// with no rollback.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Account does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	req := models.UpdateProfileRequest{
		Username:           c.FormValue("username"),
		Email:              c.FormValue("email"),
		Password:           c.FormValue("password"),
		Bio:                c.FormValue("bio"),
		RelationshipStatus: c.FormValue("relationshipStatus"),
	}

	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and email are required"})
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		user.Password = string(hashed)
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Desc = req.Bio
	user.Relationship = req.RelationshipStatus

	if file, err := c.FormFile("avatar"); err == nil {
		name, err := uploads.SaveFile(h.uploadDir, file)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		user.Avatar = name
	}
	if file, err := c.FormFile("coverPicture"); err == nil {
		name, err := uploads.SaveFile(h.uploadDir, file)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
		}
		user.CoverPicture = name
	}

	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	if err := h.cascadeSnapshots(c, user); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully", "user": user})
}

// cascadeSnapshots re-propagates the denormalized username/avatar to every
// document that copied it: the user's posts and the follower tuples on
// other users.
func (h *UserHandler) cascadeSnapshots(c echo.Context, user *models.User) error {
	ctx := c.Request().Context()
	id := user.ID.Hex()

	if err := h.postRepository.UpdateAuthorSnapshots(ctx, id, user.Username, user.Avatar); err != nil {
		return err
	}
	return h.userRepository.UpdateFollowerSnapshots(ctx, id, user.Username, user.Avatar)
}
