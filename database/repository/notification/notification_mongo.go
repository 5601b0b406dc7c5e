package notificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhub/database"
	"taskhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
	db   *mongo.Database
}

// NewMongoNotificationRepo creates a new instance of NotificationRepository using MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	db := database.DB()
	repo := &MongoNotificationRepo{coll: db.Collection("notifications"), db: db}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "is_read", Value: 1}}},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new unread notification document.
func (r *MongoNotificationRepo) Create(n *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	id, err := database.NextID(ctx, r.db, "notifications")
	if err != nil {
		return err
	}
	n.ID = id
	n.IsRead = false
	n.CreatedAt = time.Now()
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByRecipient returns a recipient's notifications, most recent first.
// The sequence id is the stable tiebreak for equal created_at values.
func (r *MongoNotificationRepo) ListByRecipient(recipientID int64) ([]models.Notification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for recipient %d: %w", recipientID, err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many of the recipient's notifications are unread.
func (r *MongoNotificationRepo) UnreadCount(recipientID int64) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for recipient %d: %w", recipientID, err)
	}
	return count, nil
}

// MarkRead flips one notification to read. The filter includes recipient_id,
// so a foreign notification is indistinguishable from a missing one.
func (r *MongoNotificationRepo) MarkRead(recipientID, id int64) (*models.Notification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"is_read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var n models.Notification
	if err := res.Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	return &n, nil
}

// MarkAllRead flips all of the recipient's unread notifications. The single
// conditional UpdateMany keeps concurrent callers from double-counting: each
// document's false->true transition is counted exactly once.
func (r *MongoNotificationRepo) MarkAllRead(recipientID int64) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateMany(
		ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read for recipient %d: %w", recipientID, err)
	}
	return result.ModifiedCount, nil
}
