package handlers

import (
	"errors"
	"net/http"

	"taskhub/middleware"
	"taskhub/models"
	"taskhub/services/notification"
	"taskhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the notification service endpoints. Every
// route requires authentication; the recipient scope always comes from the
// caller's principal, never from request input.
type NotificationHandler struct {
	NotificationService notification.NotificationService
}

// NewNotificationHandler creates a NotificationHandler backed by the given service.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{NotificationService: svc}
}

// CreateNotificationHandler handles POST /api/notifications/create, the
// endpoint other services dispatch events to.
func (h *NotificationHandler) CreateNotificationHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var event models.EventPayload
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	n, err := h.NotificationService.CreateFromEvent(event, principal)
	if err != nil {
		if errors.Is(err, notification.ErrUnrecognizedPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to create notification",
			zap.String("eventType", event.EventType), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}
	c.JSON(http.StatusCreated, n)
}

// ListNotificationsHandler handles GET /api/notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	notifications, err := h.NotificationService.ListForRecipient(principal.ID)
	if err != nil {
		utils.GetLogger().Error("Failed to list notifications",
			zap.Int64("recipientID", principal.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// UnreadCountHandler handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	count, err := h.NotificationService.UnreadCount(principal.ID)
	if err != nil {
		utils.GetLogger().Error("Failed to count unread notifications",
			zap.Int64("recipientID", principal.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkReadHandler handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	n, err := h.NotificationService.MarkRead(principal.ID, id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		utils.GetLogger().Error("Failed to mark notification read",
			zap.Int64("id", id), zap.Int64("recipientID", principal.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllReadHandler handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	count, err := h.NotificationService.MarkAllRead(principal.ID)
	if err != nil {
		utils.GetLogger().Error("Failed to mark all notifications read",
			zap.Int64("recipientID", principal.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": count})
}
