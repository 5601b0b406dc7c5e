package models

// EventPayload is the wire format the task service posts to the notification
// service's create endpoint. Every field except EventType is optional; the
// classifier decides what it needs per event type.
type EventPayload struct {
	EventType string `json:"event_type" binding:"required"`
	TaskID    int64  `json:"task_id,omitempty"`
	Title     string `json:"title,omitempty"`
	ProjectID int64  `json:"project_id,omitempty"`
	CreatorID int64  `json:"creator_id,omitempty"`
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
}

// Fields returns the payload as a key-value map with unset fields omitted,
// used as notification metadata by the fallback classification branch.
func (p EventPayload) Fields() map[string]any {
	m := map[string]any{"event_type": p.EventType}
	if p.TaskID != 0 {
		m["task_id"] = p.TaskID
	}
	if p.Title != "" {
		m["title"] = p.Title
	}
	if p.ProjectID != 0 {
		m["project_id"] = p.ProjectID
	}
	if p.CreatorID != 0 {
		m["creator_id"] = p.CreatorID
	}
	if p.OldStatus != "" {
		m["old_status"] = p.OldStatus
	}
	if p.NewStatus != "" {
		m["new_status"] = p.NewStatus
	}
	return m
}
