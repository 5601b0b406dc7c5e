package notification

import (
	"errors"
	"fmt"

	"taskhub/auth"
	"taskhub/models"
)

// ErrUnrecognizedPayload marks an event whose matched branch is missing a
// field it must interpolate, which would produce an unusable record.
var ErrUnrecognizedPayload = errors.New("unrecognized event payload")

// Classify turns a domain event into a notification draft: it resolves the
// recipient, the sender and the human-readable text. It is a pure function
// over the payload and the calling principal.
//
// task_status_changed notifies the caller, never the task's assignee, even
// when the two differ. That mirrors the upstream contract; routing to the
// assignee would change observable behavior.
func Classify(event models.EventPayload, caller auth.Principal) (*models.Notification, error) {
	switch event.EventType {
	case models.EventTaskCreated:
		if event.Title == "" {
			return nil, fmt.Errorf("%w: task_created requires a title", ErrUnrecognizedPayload)
		}
		recipient := event.CreatorID
		if recipient == 0 {
			recipient = caller.ID
		}
		return &models.Notification{
			EventType:   event.EventType,
			RecipientID: recipient,
			SenderID:    caller.ID,
			Title:       "New task created",
			Message:     fmt.Sprintf("Task created: %s", event.Title),
			Metadata: map[string]any{
				"task_id":    event.TaskID,
				"project_id": event.ProjectID,
			},
		}, nil

	case models.EventTaskStatusChanged:
		if event.Title == "" {
			return nil, fmt.Errorf("%w: task_status_changed requires a title", ErrUnrecognizedPayload)
		}
		return &models.Notification{
			EventType:   event.EventType,
			RecipientID: caller.ID,
			SenderID:    caller.ID,
			Title:       "Task status changed",
			Message:     fmt.Sprintf("Task %q: %s -> %s", event.Title, event.OldStatus, event.NewStatus),
			Metadata: map[string]any{
				"task_id": event.TaskID,
			},
		}, nil

	default:
		// Anything else degrades to a generic notification carrying the
		// whole payload.
		return &models.Notification{
			EventType:   event.EventType,
			RecipientID: caller.ID,
			SenderID:    caller.ID,
			Title:       "Notification",
			Message:     fmt.Sprintf("%v", event.Fields()),
			Metadata:    event.Fields(),
		}, nil
	}
}
