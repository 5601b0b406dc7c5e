package commentRepo

import "taskhub/models"

// CommentRepository defines the persistence operations for task comments.
type CommentRepository interface {
	Create(comment *models.Comment) error
	// ListByTask returns a task's comments in creation order.
	ListByTask(taskID int64) ([]models.Comment, error)
	// CountByTask returns how many comments a task has.
	CountByTask(taskID int64) (int64, error)
}
