package handlers

import (
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/aminebkr/linkup-backend/pkg/uploads"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles the append-only message store.
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	uploadDir         string
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(msgRepo repositories.MessageRepository, uploadDir string) *MessageHandler {
	return &MessageHandler{
		messageRepository: msgRepo,
		uploadDir:         uploadDir,
	}
}

// RegisterMessageRoutes registers message routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("", h.CreateMessage)
	g.GET("/last/:userId/:friendId", h.GetLastMessage)
	g.GET("/:convId", h.GetConversationMessages)
}

// CreateMessage appends a message. The request is multipart with an
// optional image attachment stored on disk alongside post uploads.
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	msg := &models.Message{
		Sender:         c.FormValue("sender"),
		ConversationID: c.FormValue("conversationId"),
		Text:           c.FormValue("text"),
	}

	if file, err := c.FormFile("image"); err == nil {
		name, err := uploads.SaveFile(h.uploadDir, file)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server Error"})
		}
		msg.Image = &name
	}

	if err := h.messageRepository.CreateMessage(c.Request().Context(), msg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server Error"})
	}

	return c.JSON(http.StatusOK, msg)
}

// GetConversationMessages lists the messages of a conversation.
func (h *MessageHandler) GetConversationMessages(c echo.Context) error {
	msgs, err := h.messageRepository.GetMessagesByConversationID(c.Request().Context(), c.Param("convId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, msgs)
}

// GetLastMessage returns the most recent message between two users, or a
// placeholder when none exists.
func (h *MessageHandler) GetLastMessage(c echo.Context) error {
	msg, err := h.messageRepository.GetLastMessageBetween(c.Request().Context(), c.Param("userId"), c.Param("friendId"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusOK, echo.Map{"text": "No messages yet"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch last message: " + err.Error()})
	}
	return c.JSON(http.StatusOK, msg)
}
