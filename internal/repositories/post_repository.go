package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aminebkr/linkup-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []string) ([]models.Post, error)
	ReplacePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) error
	DeletePost(ctx context.Context, id string) error
	UpdateAuthorSnapshots(ctx context.Context, userID, username, profilePicture string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Dislikes == nil {
		post.Dislikes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", ErrNotFound)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves the posts of a single user
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"userId": userID})
}

// GetPostsByUserIDs retrieves the posts of every user in the id set with a
// single $in query. An empty set yields an empty result.
func (r *MongoPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []string) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.findPosts(ctx, bson.M{"userId": bson.M{"$in": userIDs}})
}

func (r *MongoPostRepository) findPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// ReplacePost writes back the engagement state (likes, dislikes, comments)
// of a post that was mutated in memory.
func (r *MongoPostRepository) ReplacePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"likes":     post.Likes,
			"dislikes":  post.Dislikes,
			"comments":  post.Comments,
			"updatedAt": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePost updates the author-editable fields of an existing post
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", ErrNotFound)
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Desc != "" {
		set["desc"] = req.Desc
	}
	if req.TagsFriends != nil {
		set["tagsFriends"] = req.TagsFriends
	}
	if req.Location != "" {
		set["location"] = req.Location
	}
	if req.Feeling != "" {
		set["feeling"] = req.Feeling
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", ErrNotFound)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAuthorSnapshots rewrites the denormalized author username/avatar on
// every post owned by userID. Part of the profile-edit cascade.
func (r *MongoPostRepository) UpdateAuthorSnapshots(ctx context.Context, userID, username, profilePicture string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"username":       username,
			"profilePicture": profilePicture,
		}},
	)
	return err
}
