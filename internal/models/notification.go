package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the engagement handlers.
const (
	NotificationLike    = "like"
	NotificationDislike = "dislike"
	NotificationComment = "comment"
)

// Notification is a create-only record telling Receiver that Sender reacted
// to or commented on one of their posts.
type Notification struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Sender    string             `json:"sender" bson:"sender"`
	Receiver  string             `json:"receiver" bson:"receiver"`
	Type      string             `json:"type" bson:"type"`
	Message   string             `json:"message" bson:"message"`
	PostID    string             `json:"postId,omitempty" bson:"postId,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
