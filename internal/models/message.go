package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an append-only chat message. Text and Image are each optional;
// Image holds the stored filename of an uploaded attachment. Messages are
// never updated once created.
type Message struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Sender         string             `json:"sender" bson:"sender"`
	ConversationID string             `json:"conversationId" bson:"conversationId"`
	Text           string             `json:"text,omitempty" bson:"text,omitempty"`
	Image          *string            `json:"image" bson:"image"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// SharedImage is the projection returned by the shared-photos lookup.
type SharedImage struct {
	Image     *string   `json:"image" bson:"image"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
