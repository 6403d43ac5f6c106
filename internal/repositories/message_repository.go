package repositories

import (
	"context"
	"time"

	"github.com/aminebkr/linkup-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for message data operations.
// Messages are append-only: there is no update or delete.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessagesByConversationID(ctx context.Context, convID string) ([]models.Message, error)
	GetLastMessageBetween(ctx context.Context, userID, friendID string) (*models.Message, error)
	GetSharedImages(ctx context.Context, convID string) ([]models.SharedImage, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// CreateMessage appends a new message document
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetMessagesByConversationID lists the messages of a conversation in
// insertion order.
func (r *MongoMessageRepository) GetMessagesByConversationID(ctx context.Context, convID string) ([]models.Message, error) {
	var msgs []models.Message
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"conversationId": convID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// GetLastMessageBetween finds the most recent message either user sent the other
func (r *MongoMessageRepository) GetLastMessageBetween(ctx context.Context, userID, friendID string) (*models.Message, error) {
	var msg models.Message
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{
		"$or": []bson.M{
			{"sender": userID, "receiver": friendID},
			{"sender": friendID, "receiver": userID},
		},
	}, findOptions).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// GetSharedImages lists the image attachments of a conversation, newest first
func (r *MongoMessageRepository) GetSharedImages(ctx context.Context, convID string) ([]models.SharedImage, error) {
	var images []models.SharedImage
	findOptions := options.Find().
		SetProjection(bson.M{"image": 1, "createdAt": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{
		"conversationId": convID,
		"image":          bson.M{"$ne": nil},
	}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.SharedImage{}
	}
	return images, nil
}
