package models

import "time"

// Known event types. Unknown values are accepted and classified by the
// fallback branch, so this list is descriptive, not a validation gate.
const (
	EventTaskCreated       = "task_created"
	EventTaskStatusChanged = "task_status_changed"
	EventTaskAssigned      = "task_assigned"
	EventCommentAdded      = "comment_added"
	EventProjectCreated    = "project_created"
)

// Notification is the persisted result of classifying an event. RecipientID
// scopes every query; it is never mutated after creation, and IsRead only
// ever moves false -> true.
type Notification struct {
	ID          int64          `bson:"id" json:"id"`
	EventType   string         `bson:"event_type" json:"event_type"`
	RecipientID int64          `bson:"recipient_id" json:"recipient_id"`
	SenderID    int64          `bson:"sender_id,omitempty" json:"sender_id,omitempty"`
	Title       string         `bson:"title" json:"title"`
	Message     string         `bson:"message" json:"message"`
	IsRead      bool           `bson:"is_read" json:"is_read"`
	Metadata    map[string]any `bson:"metadata" json:"metadata"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
}
