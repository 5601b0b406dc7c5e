package notification

import (
	"taskhub/auth"
	notificationRepo "taskhub/database/repository/notification"
	"taskhub/models"

	"github.com/go-redis/redis/v8"
)

// NotificationService defines business logic for the notification service.
// Every query is scoped to one recipient; no operation can observe or touch
// another recipient's records.
type NotificationService interface {
	// CreateFromEvent classifies an event and persists the result.
	CreateFromEvent(event models.EventPayload, caller auth.Principal) (*models.Notification, error)
	// ListForRecipient returns the recipient's notifications, most recent first.
	ListForRecipient(recipientID int64) ([]models.Notification, error)
	// UnreadCount returns the recipient's number of unread notifications.
	UnreadCount(recipientID int64) (int64, error)
	// MarkRead flips one notification to read; idempotent.
	MarkRead(recipientID, id int64) (*models.Notification, error)
	// MarkAllRead flips all unread notifications and returns how many changed.
	MarkAllRead(recipientID int64) (int64, error)
}

// DefaultNotificationService is the production implementation. Cache is an
// optional Redis client for the unread counter; nil disables caching and
// every count goes straight to the repository.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Cache *redis.Client
}
