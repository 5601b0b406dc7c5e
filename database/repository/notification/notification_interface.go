package notificationRepo

import (
	"errors"

	"taskhub/models"
)

// ErrNotFound is returned when no notification matches id and recipient. A
// notification owned by someone else is reported the same way as one that
// does not exist.
var ErrNotFound = errors.New("notification not found")

// NotificationRepository defines the persistence operations for
// notifications. Every read and write is scoped to a recipient.
type NotificationRepository interface {
	// Create inserts a new unread notification, assigning id and created_at.
	Create(n *models.Notification) error
	// ListByRecipient returns a recipient's notifications, most recent
	// first; ties on created_at break by insertion order.
	ListByRecipient(recipientID int64) ([]models.Notification, error)
	// UnreadCount returns how many of the recipient's notifications are unread.
	UnreadCount(recipientID int64) (int64, error)
	// MarkRead flips one notification to read and returns it. Marking an
	// already-read notification succeeds without further mutation.
	MarkRead(recipientID, id int64) (*models.Notification, error)
	// MarkAllRead flips all of the recipient's unread notifications in a
	// single conditional update and returns how many changed.
	MarkAllRead(recipientID int64) (int64, error)
}
