package notification

import (
	"sort"
	"testing"
	"time"

	"taskhub/auth"
	notificationRepo "taskhub/database/repository/notification"
	"taskhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memNotificationRepo is an in-memory NotificationRepository with the same
// scoping and ordering semantics as the Mongo implementation.
type memNotificationRepo struct {
	nextID int64
	items  []*models.Notification
}

func (m *memNotificationRepo) Create(n *models.Notification) error {
	m.nextID++
	n.ID = m.nextID
	n.IsRead = false
	n.CreatedAt = time.Now()
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}
	copied := *n
	m.items = append(m.items, &copied)
	return nil
}

func (m *memNotificationRepo) ListByRecipient(recipientID int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.items {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memNotificationRepo) UnreadCount(recipientID int64) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkRead(recipientID, id int64) (*models.Notification, error) {
	for _, n := range m.items {
		if n.ID == id && n.RecipientID == recipientID {
			n.IsRead = true
			copied := *n
			return &copied, nil
		}
	}
	return nil, notificationRepo.ErrNotFound
}

func (m *memNotificationRepo) MarkAllRead(recipientID int64) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func newTestService() (*DefaultNotificationService, *memNotificationRepo) {
	repo := &memNotificationRepo{}
	return &DefaultNotificationService{Repo: repo}, repo
}

func seed(t *testing.T, svc *DefaultNotificationService, recipientID int64, title string) *models.Notification {
	t.Helper()
	n, err := svc.CreateFromEvent(models.EventPayload{
		EventType: models.EventTaskCreated,
		CreatorID: recipientID,
		Title:     title,
		TaskID:    1,
		ProjectID: 1,
	}, auth.Principal{ID: 99, Name: "system", Authenticated: true})
	require.NoError(t, err)
	return n
}

func TestCreateFromEventPersistsClassification(t *testing.T) {
	svc, repo := newTestService()

	n := seed(t, svc, 5, "Ship it")
	assert.NotZero(t, n.ID)
	assert.False(t, n.IsRead)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, int64(5), n.RecipientID)
	assert.Len(t, repo.items, 1)
}

func TestCreateFromEventRejectsUnusablePayload(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.CreateFromEvent(models.EventPayload{EventType: models.EventTaskCreated},
		auth.Principal{ID: 1, Authenticated: true})
	assert.ErrorIs(t, err, ErrUnrecognizedPayload)
	assert.Empty(t, repo.items)
}

func TestListForRecipientScopesResults(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc, 5, "for five a")
	seed(t, svc, 5, "for five b")
	seed(t, svc, 6, "for six")

	list, err := svc.ListForRecipient(5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.Equal(t, int64(5), n.RecipientID)
	}

	// Most recent first; ties on created_at break by insertion order.
	assert.Contains(t, list[0].Message, "for five b")
	assert.Contains(t, list[1].Message, "for five a")
}

func TestUnreadCountPerRecipient(t *testing.T) {
	svc, _ := newTestService()
	first := seed(t, svc, 1, "one")
	seed(t, svc, 1, "two")
	seed(t, svc, 2, "three")

	_, err := svc.MarkRead(1, first.ID)
	require.NoError(t, err)

	count, err := svc.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.UnreadCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	n := seed(t, svc, 1, "read me")

	marked, err := svc.MarkRead(1, n.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)

	again, err := svc.MarkRead(1, n.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)
}

func TestMarkReadForeignNotificationIsNotFound(t *testing.T) {
	svc, _ := newTestService()
	n := seed(t, svc, 1, "private")

	_, err := svc.MarkRead(2, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.MarkRead(1, n.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllReadCountsAndScopes(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc, 1, "a")
	seed(t, svc, 1, "b")
	seed(t, svc, 1, "c")
	seed(t, svc, 2, "other")

	count, err := svc.MarkAllRead(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Second call has nothing left to flip.
	count, err = svc.MarkAllRead(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	unread, err := svc.UnreadCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
