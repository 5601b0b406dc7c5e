package task

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"taskhub/models"
	"taskhub/utils"

	"go.uber.org/zap"
)

// EventDispatcher sends a domain event to the notification service. Delivery
// is best-effort, at most once: implementations never report failure to the
// caller, because the local mutation has already committed and must not be
// rolled back or retried on account of a side-channel.
type EventDispatcher interface {
	Dispatch(event models.EventPayload, rawToken string)
}

// HTTPEventDispatcher posts events to the notification service's create
// endpoint, forwarding the caller's bearer token so the receiving side can
// verify it independently.
type HTTPEventDispatcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPEventDispatcher returns a dispatcher targeting baseURL with the
// given per-call timeout.
func NewHTTPEventDispatcher(baseURL string, timeout time.Duration) *HTTPEventDispatcher {
	return &HTTPEventDispatcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Dispatch posts the event. Every failure mode (marshalling, connection
// refusal, timeout, non-2xx status) is logged at Warn and swallowed. The
// call deliberately runs on its own clock: it is not bound to the
// originating request's context, so an aborted client connection cannot cut
// a dispatch short once the mutation committed.
func (d *HTTPEventDispatcher) Dispatch(event models.EventPayload, rawToken string) {
	logger := utils.GetLogger()

	body, err := json.Marshal(event)
	if err != nil {
		logger.Warn("failed to encode notification event", zap.String("eventType", event.EventType), zap.Error(err))
		return
	}

	req, err := http.NewRequest(http.MethodPost, d.baseURL+"/api/notifications/create", bytes.NewReader(body))
	if err != nil {
		logger.Warn("failed to build notification request", zap.String("eventType", event.EventType), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+rawToken)

	resp, err := d.client.Do(req)
	if err != nil {
		logger.Warn("failed to deliver notification event",
			zap.String("eventType", event.EventType), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("notification service rejected event",
			zap.String("eventType", event.EventType), zap.Int("status", resp.StatusCode))
	}
}
