package taskRepo

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

// MongoTaskRepo implements TaskRepository using MongoDB.
type MongoTaskRepo struct {
	coll *mongo.Collection
	db   *mongo.Database
}

// NewMongoTaskRepo creates a new instance of TaskRepository using MongoDB.
func NewMongoTaskRepo() TaskRepository {
	db := database.DB()
	repo := &MongoTaskRepo{coll: db.Collection("tasks"), db: db}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTaskRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new task document.
func (r *MongoTaskRepo) Create(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	id, err := database.NextID(ctx, r.db, "tasks")
	if err != nil {
		return err
	}
	now := time.Now()
	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its id.
func (r *MongoTaskRepo) GetByID(id int64) (*models.Task, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch task with id %d: %w", id, err)
	}
	return &task, nil
}

// Update modifies an existing task document.
func (r *MongoTaskRepo) Update(task *models.Task) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	task.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": task.ID}, bson.M{"$set": task})
	if err != nil {
		return fmt.Errorf("failed to update task with id %d: %w", task.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task document by its id.
func (r *MongoTaskRepo) Delete(id int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task with id %d: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns tasks matching the filter, most recent first.
func (r *MongoTaskRepo) List(filter models.TaskFilter) ([]models.Task, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ProjectID != 0 {
		query["project_id"] = filter.ProjectID
	}
	if filter.AssigneeID != 0 {
		query["assignee_id"] = filter.AssigneeID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// CountByStatus returns per-status task counts for one project.
func (r *MongoTaskRepo) CountByStatus(projectID int64) (map[string]int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"project_id": projectID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode task count row: %w", err)
		}
		counts[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task counts: %w", err)
	}
	return counts, nil
}
