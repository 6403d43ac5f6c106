package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation links exactly two participants. Membres is order-insensitive:
// lookup is a set-containment query, so (A,B) and (B,A) resolve to the same
// document.
type Conversation struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Membres   []string           `json:"membres" bson:"membres"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateConversationRequest defines the request body for POST /api/conv.
type CreateConversationRequest struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
}
