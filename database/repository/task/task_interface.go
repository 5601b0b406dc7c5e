package taskRepo

import (
	"errors"

	"taskhub/models"
)

// ErrNotFound is returned when no task matches the lookup.
var ErrNotFound = errors.New("task not found")

// TaskRepository defines the persistence operations for tasks.
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id int64) (*models.Task, error)
	Update(task *models.Task) error
	Delete(id int64) error
	// List returns tasks matching the filter, most recent first.
	List(filter models.TaskFilter) ([]models.Task, error)
	// CountByStatus returns per-status task counts for one project.
	CountByStatus(projectID int64) (map[string]int64, error)
}
