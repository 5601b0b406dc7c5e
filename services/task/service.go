package task

import (
	"errors"
	"fmt"

	"taskhub/auth"
	"taskhub/models"
)

// ErrValidation marks rejected input; handlers map it to 400.
var ErrValidation = errors.New("validation error")

// CreateProject stores a project owned by the caller.
func (s *DefaultTaskService) CreateProject(project models.Project, caller auth.Principal) (*models.Project, error) {
	if project.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if project.Status != "" && !models.ValidProjectStatus(project.Status) {
		return nil, fmt.Errorf("%w: unknown project status %q", ErrValidation, project.Status)
	}
	project.OwnerID = caller.ID
	if err := s.Projects.Create(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject retrieves a project by id.
func (s *DefaultTaskService) GetProject(id int64) (*models.Project, error) {
	return s.Projects.GetByID(id)
}

// UpdateProject applies the non-nil fields of upd.
func (s *DefaultTaskService) UpdateProject(id int64, upd ProjectUpdate) (*models.Project, error) {
	project, err := s.Projects.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: project name cannot be empty", ErrValidation)
		}
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if upd.Status != nil {
		if !models.ValidProjectStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown project status %q", ErrValidation, *upd.Status)
		}
		project.Status = *upd.Status
	}
	if upd.Deadline != nil {
		project.Deadline = upd.Deadline
	}

	if err := s.Projects.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project.
func (s *DefaultTaskService) DeleteProject(id int64) error {
	return s.Projects.Delete(id)
}

// ListProjects returns all projects.
func (s *DefaultTaskService) ListProjects() ([]models.Project, error) {
	return s.Projects.List()
}

// ProjectStatistics returns the per-status task breakdown for a project.
func (s *DefaultTaskService) ProjectStatistics(id int64) (*models.ProjectStatistics, error) {
	if _, err := s.Projects.GetByID(id); err != nil {
		return nil, err
	}
	counts, err := s.Tasks.CountByStatus(id)
	if err != nil {
		return nil, err
	}

	stats := &models.ProjectStatistics{
		Todo:       counts[models.TaskTodo],
		InProgress: counts[models.TaskInProgress],
		Review:     counts[models.TaskReview],
		Done:       counts[models.TaskDone],
		Cancelled:  counts[models.TaskCancelled],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// CreateTask stores a task created by the caller, then dispatches a
// task_created event. The dispatch happens after the write committed and
// cannot fail the creation.
func (s *DefaultTaskService) CreateTask(task models.Task, caller auth.Principal, rawToken string) (*models.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if task.ProjectID == 0 {
		return nil, fmt.Errorf("%w: project_id is required", ErrValidation)
	}
	if task.Status != "" && !models.ValidTaskStatus(task.Status) {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrValidation, task.Status)
	}
	if task.Priority != "" && !models.ValidTaskPriority(task.Priority) {
		return nil, fmt.Errorf("%w: unknown task priority %q", ErrValidation, task.Priority)
	}
	if _, err := s.Projects.GetByID(task.ProjectID); err != nil {
		return nil, err
	}

	task.CreatorID = caller.ID
	if err := s.Tasks.Create(&task); err != nil {
		return nil, err
	}

	s.Dispatcher.Dispatch(models.EventPayload{
		EventType: models.EventTaskCreated,
		TaskID:    task.ID,
		Title:     task.Title,
		ProjectID: task.ProjectID,
		CreatorID: task.CreatorID,
	}, rawToken)

	return &task, nil
}

// GetTask retrieves a task by id.
func (s *DefaultTaskService) GetTask(id int64) (*models.Task, error) {
	return s.Tasks.GetByID(id)
}

// UpdateTask applies the non-nil fields of upd. When the status actually
// changed, a task_status_changed event is dispatched after the write.
func (s *DefaultTaskService) UpdateTask(id int64, upd TaskUpdate, caller auth.Principal, rawToken string) (*models.Task, error) {
	task, err := s.Tasks.GetByID(id)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: task title cannot be empty", ErrValidation)
		}
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Priority != nil {
		if !models.ValidTaskPriority(*upd.Priority) {
			return nil, fmt.Errorf("%w: unknown task priority %q", ErrValidation, *upd.Priority)
		}
		task.Priority = *upd.Priority
	}
	if upd.Status != nil {
		if !models.ValidTaskStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown task status %q", ErrValidation, *upd.Status)
		}
		task.Status = *upd.Status
	}
	if upd.AssigneeID != nil {
		task.AssigneeID = upd.AssigneeID
	}
	if upd.Deadline != nil {
		task.Deadline = upd.Deadline
	}

	if err := s.Tasks.Update(task); err != nil {
		return nil, err
	}

	if task.Status != oldStatus {
		s.Dispatcher.Dispatch(models.EventPayload{
			EventType: models.EventTaskStatusChanged,
			TaskID:    task.ID,
			Title:     task.Title,
			OldStatus: oldStatus,
			NewStatus: task.Status,
		}, rawToken)
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *DefaultTaskService) DeleteTask(id int64) error {
	return s.Tasks.Delete(id)
}

// ListTasks returns tasks matching the filter.
func (s *DefaultTaskService) ListTasks(filter models.TaskFilter) ([]models.Task, error) {
	return s.Tasks.List(filter)
}

// AddComment attaches a comment authored by the caller to a task.
func (s *DefaultTaskService) AddComment(taskID int64, text string, caller auth.Principal) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if _, err := s.Tasks.GetByID(taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: caller.ID,
		Text:     text,
	}
	if err := s.Comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a task's comments in creation order.
func (s *DefaultTaskService) ListComments(taskID int64) ([]models.Comment, error) {
	if _, err := s.Tasks.GetByID(taskID); err != nil {
		return nil, err
	}
	return s.Comments.ListByTask(taskID)
}
