package models

import "time"

// Project statuses.
const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Project groups tasks under a single owner. The owner is identified by the
// auth service's user id; no user record exists in the task service.
type Project struct {
	ID          int64      `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	Status      string     `bson:"status" json:"status"`
	OwnerID     int64      `bson:"owner_id" json:"owner_id"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	Deadline    *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
}

// ValidProjectStatus reports whether s is one of the accepted project statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// ProjectStatistics is the per-status task breakdown for one project.
type ProjectStatistics struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Review     int64 `json:"review"`
	Done       int64 `json:"done"`
	Cancelled  int64 `json:"cancelled"`
}
