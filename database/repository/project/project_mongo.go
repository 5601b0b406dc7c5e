package projectRepo

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

// MongoProjectRepo implements ProjectRepository using MongoDB.
type MongoProjectRepo struct {
	coll *mongo.Collection
	db   *mongo.Database
}

// NewMongoProjectRepo creates a new instance of ProjectRepository using MongoDB.
func NewMongoProjectRepo() ProjectRepository {
	db := database.DB()
	repo := &MongoProjectRepo{coll: db.Collection("projects"), db: db}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProjectRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new project document.
func (r *MongoProjectRepo) Create(project *models.Project) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	id, err := database.NextID(ctx, r.db, "projects")
	if err != nil {
		return err
	}
	now := time.Now()
	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = models.ProjectPlanning
	}

	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its id.
func (r *MongoProjectRepo) GetByID(id int64) (*models.Project, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var project models.Project
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&project); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch project with id %d: %w", id, err)
	}
	return &project, nil
}

// Update modifies an existing project document.
func (r *MongoProjectRepo) Update(project *models.Project) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	project.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": project.ID}, bson.M{"$set": project})
	if err != nil {
		return fmt.Errorf("failed to update project with id %d: %w", project.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project document by its id.
func (r *MongoProjectRepo) Delete(id int64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project with id %d: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all projects, most recent first.
func (r *MongoProjectRepo) List() ([]models.Project, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}
