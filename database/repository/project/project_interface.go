package projectRepo

import (
	"errors"

	"taskhub/models"
)

// ErrNotFound is returned when no project matches the lookup.
var ErrNotFound = errors.New("project not found")

// ProjectRepository defines the persistence operations for projects.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id int64) (*models.Project, error)
	Update(project *models.Project) error
	Delete(id int64) error
	List() ([]models.Project, error)
}
