package notification

import (
	"testing"

	"taskhub/auth"
	"taskhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTaskCreated(t *testing.T) {
	caller := auth.Principal{ID: 1, Name: "alice", Authenticated: true}
	event := models.EventPayload{
		EventType: models.EventTaskCreated,
		CreatorID: 7,
		Title:     "Write report",
		TaskID:    42,
		ProjectID: 3,
	}

	n, err := Classify(event, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n.RecipientID)
	assert.Equal(t, int64(1), n.SenderID)
	assert.Equal(t, "New task created", n.Title)
	assert.Contains(t, n.Message, "Write report")
	assert.Equal(t, map[string]any{"task_id": int64(42), "project_id": int64(3)}, n.Metadata)
}

func TestClassifyTaskCreatedWithoutCreatorFallsBackToCaller(t *testing.T) {
	caller := auth.Principal{ID: 9, Name: "carol", Authenticated: true}
	event := models.EventPayload{
		EventType: models.EventTaskCreated,
		Title:     "Untracked chore",
	}

	n, err := Classify(event, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n.RecipientID)
	assert.Equal(t, int64(9), n.SenderID)
}

func TestClassifyTaskStatusChangedNotifiesCaller(t *testing.T) {
	// The recipient is the caller even when the task has an assignee.
	caller := auth.Principal{ID: 4, Name: "dave", Authenticated: true}
	event := models.EventPayload{
		EventType: models.EventTaskStatusChanged,
		Title:     "X",
		OldStatus: "todo",
		NewStatus: "done",
		TaskID:    9,
	}

	n, err := Classify(event, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.RecipientID)
	assert.Equal(t, int64(4), n.SenderID)
	assert.Equal(t, "Task status changed", n.Title)
	assert.Contains(t, n.Message, "todo")
	assert.Contains(t, n.Message, "done")
	assert.Equal(t, map[string]any{"task_id": int64(9)}, n.Metadata)
}

func TestClassifyUnknownEventUsesFallback(t *testing.T) {
	caller := auth.Principal{ID: 2, Name: "erin", Authenticated: true}
	event := models.EventPayload{
		EventType: "deployment_finished",
		Title:     "release 1.4",
		ProjectID: 12,
	}

	n, err := Classify(event, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n.RecipientID)
	assert.Equal(t, int64(2), n.SenderID)
	assert.Equal(t, "Notification", n.Title)
	assert.Equal(t, "deployment_finished", n.EventType)
	// Fallback keeps the whole payload as metadata.
	assert.Equal(t, "deployment_finished", n.Metadata["event_type"])
	assert.Equal(t, "release 1.4", n.Metadata["title"])
	assert.Equal(t, int64(12), n.Metadata["project_id"])
	assert.Contains(t, n.Message, "deployment_finished")
}

func TestClassifyRejectsMissingTitle(t *testing.T) {
	caller := auth.Principal{ID: 2, Name: "erin", Authenticated: true}

	_, err := Classify(models.EventPayload{EventType: models.EventTaskCreated}, caller)
	assert.ErrorIs(t, err, ErrUnrecognizedPayload)

	_, err = Classify(models.EventPayload{
		EventType: models.EventTaskStatusChanged,
		OldStatus: "todo",
		NewStatus: "done",
	}, caller)
	assert.ErrorIs(t, err, ErrUnrecognizedPayload)
}
