package handlers

import (
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler implements the friendship state machine over the three
// relationship arrays stored on each user document:
//
//	none --sendRequest--> pending --acceptRequest--> mutual
//	pending --removeRequest--> none
//	mutual --unfriend--> none
//
// Each transition rewrites two user documents as sequential independent
// writes; there is no multi-document transaction, so a failure between the
// two writes leaves a one-sided edge behind. Concurrent mutations of the
// same user's arrays are last-writer-wins.
type FriendshipHandler struct {
	userRepository repositories.UserRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(userRepo repositories.UserRepository) *FriendshipHandler {
	return &FriendshipHandler{userRepository: userRepo}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/request/:friendid/:userid", h.SendRequest)
	g.POST("/accept/:friendid/:userid", h.AcceptRequest)
	g.POST("/remove/:friendid/:userid", h.RemoveRequest)
	g.POST("/delete/:friendid/:userid", h.Unfriend)
	g.GET("/friendship-status/:friendid/:userid", h.FriendshipStatus)
	g.GET("/Requetes/:id", h.GetRequetes)
}

// loadPair fetches both ends of a friendship operation.
func (h *FriendshipHandler) loadPair(c echo.Context) (friend, user *models.User, err error) {
	ctx := c.Request().Context()

	friend, err = h.userRepository.GetUserByID(ctx, c.Param("friendid"))
	if err == nil {
		user, err = h.userRepository.GetUserByID(ctx, c.Param("userid"))
	}
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return friend, user, nil
}

// saveBoth persists the two mutated user documents, friend first. Not
// atomic: a failure on the second write leaves the first in place.
func (h *FriendshipHandler) saveBoth(c echo.Context, friend, user *models.User) error {
	ctx := c.Request().Context()
	if err := h.userRepository.UpdateUser(ctx, friend); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return nil
}

// SendRequest records a pending friend request: the requested user gets the
// requester in Requetes, the requester gets the target in Invitations.
// There is no existence check, so repeating the call appends duplicate
// tuples.
func (h *FriendshipHandler) SendRequest(c echo.Context) error {
	friend, user, err := h.loadPair(c)
	if err != nil {
		return err
	}

	friend.Requetes = append(friend.Requetes, user.Ref())
	user.Invitations = append(user.Invitations, friend.Ref())

	if err := h.saveBoth(c, friend, user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Request Sent", "user": user})
}

// AcceptRequest promotes a pending request to a mutual friendship. Both
// membership checks are evaluated so the two failure cases report distinct
// messages.
func (h *FriendshipHandler) AcceptRequest(c echo.Context) error {
	friend, user, err := h.loadPair(c)
	if err != nil {
		return err
	}

	requestExists := models.HasRef(friend.Invitations, user.ID.Hex())
	invitationExists := models.HasRef(user.Requetes, friend.ID.Hex())

	if requestExists && invitationExists {
		friend.Invitations = models.RemoveRef(friend.Invitations, user.ID.Hex())
		user.Requetes = models.RemoveRef(user.Requetes, friend.ID.Hex())

		friend.Followers = append(friend.Followers, user.Ref())
		user.Followers = append(user.Followers, friend.Ref())

		if err := h.saveBoth(c, friend, user); err != nil {
			return err
		}

		return c.JSON(http.StatusOK, echo.Map{"message": "Friend request accepted", "user": user})
	}

	if !requestExists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Friend request not found"})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invitation not found"})
}

// RemoveRequest cancels a pending request from both sides. Removing an
// absent tuple is a no-op, so the operation is idempotent.
func (h *FriendshipHandler) RemoveRequest(c echo.Context) error {
	friend, user, err := h.loadPair(c)
	if err != nil {
		return err
	}

	friend.Invitations = models.RemoveRef(friend.Invitations, user.ID.Hex())
	user.Requetes = models.RemoveRef(user.Requetes, friend.ID.Hex())

	if err := h.saveBoth(c, friend, user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request removed", "user": user})
}

// Unfriend dissolves a mutual friendship from both sides. Idempotent.
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	friend, user, err := h.loadPair(c)
	if err != nil {
		return err
	}

	friend.Followers = models.RemoveRef(friend.Followers, user.ID.Hex())
	user.Followers = models.RemoveRef(user.Followers, friend.ID.Hex())

	if err := h.saveBoth(c, friend, user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request removed", "user": user})
}

// FriendshipStatus reports the pair state as three booleans computed by
// membership tests over the caller's arrays. Pure read, no mutation.
func (h *FriendshipHandler) FriendshipStatus(c echo.Context) error {
	friend, user, err := h.loadPair(c)
	if err != nil {
		return err
	}

	friendID := friend.ID.Hex()
	return c.JSON(http.StatusOK, echo.Map{
		"requestSent":        models.HasRef(user.Requetes, friendID),
		"invitationReceived": models.HasRef(user.Invitations, friendID),
		"areFriends":         models.HasRef(user.Followers, friendID),
	})
}

// GetRequetes returns a user's incoming pending friend requests.
func (h *FriendshipHandler) GetRequetes(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, user.Requetes)
}
