package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aminebkr/linkup-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetAllUsersExcept(ctx context.Context, id string) ([]models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdateFollowerSnapshots(ctx context.Context, userID, username, profilePicture string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user document
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.Followers == nil {
		user.Followers = []models.FriendRef{}
	}
	if user.Requetes == nil {
		user.Requetes = []models.FriendRef{}
	}
	if user.Invitations == nil {
		user.Invitations = []models.FriendRef{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by their hex object id
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", ErrNotFound)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAllUsers retrieves every user document
func (r *MongoUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return r.findUsers(ctx, bson.M{})
}

// GetAllUsersExcept retrieves every user except the one with the given id
func (r *MongoUserRepository) GetAllUsersExcept(ctx context.Context, id string) ([]models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", ErrNotFound)
	}
	return r.findUsers(ctx, bson.M{"_id": bson.M{"$ne": objID}})
}

// GetUsersByIDs retrieves the users whose id is in the given set
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	return r.findUsers(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
}

func (r *MongoUserRepository) findUsers(ctx context.Context, filter bson.M) ([]models.User, error) {
	var users []models.User
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces the mutable fields of an existing user document,
// including the three relationship arrays.
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"username":     user.Username,
			"email":        user.Email,
			"password":     user.Password,
			"avatar":       user.Avatar,
			"coverPicture": user.CoverPicture,
			"followers":    user.Followers,
			"Requetes":     user.Requetes,
			"Invitations":  user.Invitations,
			"desc":         user.Desc,
			"city":         user.City,
			"from":         user.From,
			"relationship": user.Relationship,
			"updatedAt":    user.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFollowerSnapshots rewrites the denormalized username/profilePicture
// tuple for userID inside every other user's followers array. Part of the
// profile-edit cascade.
func (r *MongoUserRepository) UpdateFollowerSnapshots(ctx context.Context, userID, username, profilePicture string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"followers.id": userID},
		bson.M{"$set": bson.M{
			"followers.$.username":       username,
			"followers.$.profilePicture": profilePicture,
		}},
	)
	return err
}
