package repositories

import (
	"context"
	"time"

	"github.com/aminebkr/linkup-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	FindByMembers(ctx context.Context, memberA, memberB string) (*models.Conversation, error)
	FindByMember(ctx context.Context, member string) ([]models.Conversation, error)
}

// MongoConversationRepository implements ConversationRepository for MongoDB
type MongoConversationRepository struct {
	collection *mongo.Collection
}

// NewMongoConversationRepository creates a new MongoConversationRepository
func NewMongoConversationRepository(db *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{collection: db.Collection("conversations")}
}

// CreateConversation inserts a new conversation document
func (r *MongoConversationRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	conv.ID = primitive.NewObjectID()
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, conv)
	return err
}

// FindByMembers looks up the conversation containing both members,
// regardless of the order they were stored in.
func (r *MongoConversationRepository) FindByMembers(ctx context.Context, memberA, memberB string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.collection.FindOne(ctx, bson.M{
		"membres": bson.M{"$all": []string{memberA, memberB}},
	}).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindByMember lists every conversation the member participates in
func (r *MongoConversationRepository) FindByMember(ctx context.Context, member string) ([]models.Conversation, error) {
	var convs []models.Conversation
	cursor, err := r.collection.Find(ctx, bson.M{
		"membres": bson.M{"$in": []string{member}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	return convs, nil
}
