package task

import (
	"time"

	"taskhub/auth"
	commentRepo "taskhub/database/repository/comment"
	projectRepo "taskhub/database/repository/project"
	taskRepo "taskhub/database/repository/task"
	"taskhub/models"
)

// TaskService defines business logic for the work-tracking service. Callers
// are identified by the Principal derived from their token; this service
// holds no user store.
type TaskService interface {
	// Projects.
	CreateProject(project models.Project, caller auth.Principal) (*models.Project, error)
	GetProject(id int64) (*models.Project, error)
	UpdateProject(id int64, upd ProjectUpdate) (*models.Project, error)
	DeleteProject(id int64) error
	ListProjects() ([]models.Project, error)
	ProjectStatistics(id int64) (*models.ProjectStatistics, error)

	// Tasks. Create dispatches a task_created event; Update dispatches
	// task_status_changed when the status actually changed. Dispatch runs
	// after the local write committed and its failure never surfaces.
	CreateTask(task models.Task, caller auth.Principal, rawToken string) (*models.Task, error)
	GetTask(id int64) (*models.Task, error)
	UpdateTask(id int64, upd TaskUpdate, caller auth.Principal, rawToken string) (*models.Task, error)
	DeleteTask(id int64) error
	ListTasks(filter models.TaskFilter) ([]models.Task, error)

	// Comments.
	AddComment(taskID int64, text string, caller auth.Principal) (*models.Comment, error)
	ListComments(taskID int64) ([]models.Comment, error)
}

// DefaultTaskService is the production implementation.
type DefaultTaskService struct {
	Projects   projectRepo.ProjectRepository
	Tasks      taskRepo.TaskRepository
	Comments   commentRepo.CommentRepository
	Dispatcher EventDispatcher
}

// ProjectUpdate carries the mutable project fields for partial updates.
type ProjectUpdate struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// TaskUpdate carries the mutable task fields for partial updates.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}
