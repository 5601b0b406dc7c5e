package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"taskhub/auth"
	notificationRepo "taskhub/database/repository/notification"
	"taskhub/models"
	"taskhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrNotFound re-exports the repository sentinel so handlers depend on the
// service package only.
var ErrNotFound = notificationRepo.ErrNotFound

const unreadCacheTTL = 5 * time.Minute

// CreateFromEvent classifies the event and persists the resulting
// notification.
func (s *DefaultNotificationService) CreateFromEvent(event models.EventPayload, caller auth.Principal) (*models.Notification, error) {
	n, err := Classify(event, caller)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	s.invalidateUnread(n.RecipientID)
	return n, nil
}

// ListForRecipient returns the recipient's notifications, most recent first.
func (s *DefaultNotificationService) ListForRecipient(recipientID int64) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(recipientID)
}

// UnreadCount returns the recipient's unread total. The Redis counter is a
// read-through cache: a hit short-circuits, a miss (or any Redis error)
// falls back to the repository, which stays the source of truth.
func (s *DefaultNotificationService) UnreadCount(recipientID int64) (int64, error) {
	ctx := context.Background()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, unreadCacheKey(recipientID)).Result()
		if err == nil {
			if count, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
				return count, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("unread cache read failed, falling back to store",
				zap.Int64("recipientID", recipientID), zap.Error(err))
		}
	}

	count, err := s.Repo.UnreadCount(recipientID)
	if err != nil {
		return 0, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, unreadCacheKey(recipientID), count, unreadCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("unread cache write failed",
				zap.Int64("recipientID", recipientID), zap.Error(err))
		}
	}
	return count, nil
}

// MarkRead flips one notification to read; idempotent, and a foreign id is
// reported as not found.
func (s *DefaultNotificationService) MarkRead(recipientID, id int64) (*models.Notification, error) {
	n, err := s.Repo.MarkRead(recipientID, id)
	if err != nil {
		return nil, err
	}
	s.invalidateUnread(recipientID)
	return n, nil
}

// MarkAllRead flips all of the recipient's unread notifications and returns
// how many changed.
func (s *DefaultNotificationService) MarkAllRead(recipientID int64) (int64, error) {
	count, err := s.Repo.MarkAllRead(recipientID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnread(recipientID)
	return count, nil
}

// invalidateUnread drops the cached unread counter after any mutation.
func (s *DefaultNotificationService) invalidateUnread(recipientID int64) {
	if s.Cache == nil {
		return
	}
	ctx := context.Background()
	if err := s.Cache.Del(ctx, unreadCacheKey(recipientID)).Err(); err != nil {
		utils.GetLogger().Warn("unread cache invalidation failed",
			zap.Int64("recipientID", recipientID), zap.Error(err))
	}
}

func unreadCacheKey(recipientID int64) string {
	return fmt.Sprintf("notif:unread:%d", recipientID)
}
