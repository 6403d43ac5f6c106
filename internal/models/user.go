package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendRef is the denormalized tuple stored in a user's relationship
// arrays. Username and ProfilePicture are snapshots taken when the edge was
// written; profile edits re-propagate them via the cascade update.
type FriendRef struct {
	ID             string `json:"id" bson:"id"`
	Username       string `json:"username" bson:"username"`
	ProfilePicture string `json:"profilePicture" bson:"profilePicture"`
}

// User represents an account document in MongoDB.
//
// Followers holds mutual friends (not a directional follow). Requetes holds
// incoming pending friend requests, Invitations outgoing ones — the field
// names follow the stored schema and are part of the API contract.
// Followings is a legacy field read only by the timeline aggregation;
// nothing in the application writes it.
type User struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	Avatar       string             `json:"avatar" bson:"avatar"`
	CoverPicture string             `json:"coverPicture" bson:"coverPicture"`
	Followers    []FriendRef        `json:"followers" bson:"followers"`
	Requetes     []FriendRef        `json:"Requetes" bson:"Requetes"`
	Invitations  []FriendRef        `json:"Invitations" bson:"Invitations"`
	Followings   []string           `json:"followings,omitempty" bson:"followings,omitempty"`
	IsAdmin      bool               `json:"isAdmin" bson:"isAdmin"`
	Desc         string             `json:"desc,omitempty" bson:"desc,omitempty"`
	City         string             `json:"city,omitempty" bson:"city,omitempty"`
	From         string             `json:"from,omitempty" bson:"from,omitempty"`
	Relationship string             `json:"relationship,omitempty" bson:"relationship,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Ref returns the denormalized tuple other documents store for this user.
func (u *User) Ref() FriendRef {
	return FriendRef{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		ProfilePicture: u.Avatar,
	}
}

// HasRef reports whether refs contains a tuple for the given user id.
func HasRef(refs []FriendRef, id string) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// RemoveRef filters the tuple for id out of refs. Removing an absent tuple
// is a no-op.
func RemoveRef(refs []FriendRef, id string) []FriendRef {
	out := make([]FriendRef, 0, len(refs))
	for _, r := range refs {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// RegisterRequest carries the multipart form fields of POST /api/auth/register.
type RegisterRequest struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest carries the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the multipart form fields of PUT /api/user/:id.
type UpdateProfileRequest struct {
	Username           string `form:"username"`
	Email              string `form:"email"`
	Password           string `form:"password"`
	Bio                string `form:"bio"`
	RelationshipStatus string `form:"relationshipStatus"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
