package handlers

import (
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification reads. Notifications are written
// by the engagement handlers and never updated.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/:userId", h.GetNotifications)
}

// GetNotifications lists a user's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifs, err := h.notificationRepository.GetNotificationsByReceiver(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(notifs) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No notifications found."})
	}

	return c.JSON(http.StatusOK, notifs)
}
