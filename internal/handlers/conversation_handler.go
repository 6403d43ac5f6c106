package handlers

import (
	"net/http"

	"github.com/aminebkr/linkup-backend/internal/models"
	"github.com/aminebkr/linkup-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ConversationHandler handles conversation lookup and lazy creation.
type ConversationHandler struct {
	conversationRepository repositories.ConversationRepository
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(convRepo repositories.ConversationRepository) *ConversationHandler {
	return &ConversationHandler{conversationRepository: convRepo}
}

// RegisterConversationRoutes registers conversation routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.POST("", h.GetOrCreateConversation)
	g.GET("/:userId", h.GetUserConversations)
}

// GetOrCreateConversation returns the conversation for the unordered pair,
// creating it on first contact. A repeated request for the same pair
// returns the existing record, so the operation is idempotent. The status
// codes mirror the historical contract: 201 for an existing conversation,
// 200 for a newly created one.
func (h *ConversationHandler) GetOrCreateConversation(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.conversationRepository.FindByMembers(ctx, req.SenderID, req.ReceiverID)
	if err == nil {
		return c.JSON(http.StatusCreated, existing)
	}
	if err != repositories.ErrNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conv := &models.Conversation{
		Membres: []string{req.SenderID, req.ReceiverID},
	}
	if err := h.conversationRepository.CreateConversation(ctx, conv); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, conv)
}

// GetUserConversations lists every conversation the user participates in.
func (h *ConversationHandler) GetUserConversations(c echo.Context) error {
	convs, err := h.conversationRepository.FindByMember(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, convs)
}
