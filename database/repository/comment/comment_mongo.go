package commentRepo

import (
	"context"
	"fmt"
	"time"

	"taskhub/database"
	"taskhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCommentRepo implements CommentRepository using MongoDB.
type MongoCommentRepo struct {
	coll *mongo.Collection
	db   *mongo.Database
}

// NewMongoCommentRepo creates a new instance of CommentRepository using MongoDB.
func NewMongoCommentRepo() CommentRepository {
	db := database.DB()
	repo := &MongoCommentRepo{coll: db.Collection("comments"), db: db}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCommentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "task_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new comment document.
func (r *MongoCommentRepo) Create(comment *models.Comment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	id, err := database.NextID(ctx, r.db, "comments")
	if err != nil {
		return err
	}
	comment.ID = id
	comment.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByTask returns a task's comments in creation order.
func (r *MongoCommentRepo) ListByTask(taskID int64) ([]models.Comment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for task %d: %w", taskID, err)
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// CountByTask returns how many comments a task has.
func (r *MongoCommentRepo) CountByTask(taskID int64) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"task_id": taskID})
	if err != nil {
		return 0, fmt.Errorf("failed to count comments for task %d: %w", taskID, err)
	}
	return count, nil
}
