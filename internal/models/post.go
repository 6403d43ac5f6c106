package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in a post's comments array. Username and Avatar are
// snapshots of the commenter at comment time and are not updated if the
// user later renames.
type Comment struct {
	UserID   string `json:"userId" bson:"userId"`
	Username string `json:"username" bson:"username"`
	Avatar   string `json:"avatar" bson:"avatar"`
	Comment  string `json:"comment" bson:"comment"`
}

// Post represents a post document in MongoDB.
//
// Likes and Dislikes are arrays of user ids treated as sets; a user id
// appears in at most one of the two at any time. Username and
// ProfilePicture are denormalized author snapshots kept in sync by the
// profile cascade update.
type Post struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	Desc           string             `json:"desc" bson:"desc"`
	Username       string             `json:"username" bson:"username"`
	ProfilePicture string             `json:"profilePicture" bson:"profilePicture"`
	Imgs           []string           `json:"imgs" bson:"imgs"`
	TagsFriends    []string           `json:"tagsFriends" bson:"tagsFriends"`
	Likes          []string           `json:"likes" bson:"likes"`
	Dislikes       []string           `json:"dislikes" bson:"dislikes"`
	Comments       []Comment          `json:"comments" bson:"comments"`
	Location       string             `json:"location,omitempty" bson:"location,omitempty"`
	Feeling        string             `json:"feeling,omitempty" bson:"feeling,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HasReaction reports whether the user id is present in the given reaction set.
func HasReaction(set []string, userID string) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

// RemoveReaction filters the user id out of a reaction set.
func RemoveReaction(set []string, userID string) []string {
	out := make([]string, 0, len(set))
	for _, id := range set {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}

// CreateCommentRequest defines the request body for adding a comment to a post.
type CreateCommentRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Only the author-editable fields may be changed.
type UpdatePostRequest struct {
	UserID      string   `json:"userId" validate:"required"`
	Desc        string   `json:"desc,omitempty"`
	TagsFriends []string `json:"tagsFriends,omitempty"`
	Location    string   `json:"location,omitempty"`
	Feeling     string   `json:"feeling,omitempty"`
}
