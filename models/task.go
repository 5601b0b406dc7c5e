package models

import "time"

// Task priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskReview     = "review"
	TaskDone       = "done"
	TaskCancelled  = "cancelled"
)

// Task is a unit of work inside a project. AssigneeID and CreatorID are user
// ids from the auth service, carried as opaque integers.
type Task struct {
	ID          int64      `bson:"id" json:"id"`
	ProjectID   int64      `bson:"project_id" json:"project_id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Priority    string     `bson:"priority" json:"priority"`
	Status      string     `bson:"status" json:"status"`
	AssigneeID  *int64     `bson:"assignee_id,omitempty" json:"assignee_id,omitempty"`
	CreatorID   int64      `bson:"creator_id" json:"creator_id"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	Deadline    *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
}

// ValidTaskStatus reports whether s is one of the accepted task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskDone, TaskCancelled:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is one of the accepted priorities.
func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// TaskFilter narrows task listings. Zero/empty fields are ignored.
type TaskFilter struct {
	ProjectID  int64
	AssigneeID int64
	Status     string
}
