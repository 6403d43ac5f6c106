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

// NotificationRepository defines the interface for notification data
// operations. Notifications are create-only.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetNotificationsByReceiver(ctx context.Context, receiverID string) ([]models.Notification, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// CreateNotification inserts a new notification document
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.ID = primitive.NewObjectID()
	notif.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notif)
	return err
}

// GetNotificationsByReceiver lists a user's notifications, newest first
func (r *MongoNotificationRepository) GetNotificationsByReceiver(ctx context.Context, receiverID string) ([]models.Notification, error) {
	var notifs []models.Notification
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"receiver": receiverID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notifs); err != nil {
		return nil, err
	}
	if notifs == nil {
		notifs = []models.Notification{}
	}
	return notifs, nil
}
