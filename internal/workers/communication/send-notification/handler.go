// internal/workers/communication/send-notification/handler.go
package sendnotification

import (
	"context"
	"time"

	"github.com/google/uuid"

	commonerrors "lookup-relay/internal/common/errors"
	"lookup-relay/internal/common/logger"
	"lookup-relay/internal/common/metrics"
	"lookup-relay/internal/common/pool"
	"lookup-relay/internal/models"
)

const (
	TaskType = "send-notification"
)

// Submitter is the part of the worker pool the handler needs.
type Submitter interface {
	Submit(task pool.Task) error
}

// Handler delivers notification events off the caller's goroutine. Delivery is best-effort:
// failures are logged and counted, never returned.
type Handler struct {
	config *Config
	sink   Sink
	pool   Submitter
	logger logger.Logger
}

func NewHandler(config *Config, sink Sink, p Submitter, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config: config,
		sink:   sink,
		pool:   p,
		logger: log.With(map[string]interface{}{"taskType": TaskType, "sink": sink.Name()}),
	}
}

// Notify submits event to the pool and returns immediately.
func (h *Handler) Notify(event models.NotificationEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	err := h.pool.Submit(func(ctx context.Context) {
		_ = h.Send(ctx, event)
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(h.sink.Name(), StatusDropped).Inc()
		h.logger.Warn("notification dropped", map[string]interface{}{
			"notificationId": event.ID,
			"error":          err.Error(),
		})
	}
}

// Send makes a single delivery attempt bounded by the configured timeout.
func (h *Handler) Send(ctx context.Context, event models.NotificationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	if err := h.sink.Send(ctx, event); err != nil {
		stdErr := commonerrors.NewNotificationFailedError(h.sink.Name(), err)
		metrics.NotificationsSent.WithLabelValues(h.sink.Name(), StatusFailed).Inc()
		h.logger.Warn("notification send failed", map[string]interface{}{
			"notificationId": event.ID,
			"errorCode":      stdErr.Code,
			"details":        stdErr.Details,
		})
		return stdErr
	}

	metrics.NotificationsSent.WithLabelValues(h.sink.Name(), StatusSent).Inc()
	h.logger.Debug("notification sent", map[string]interface{}{
		"notificationId": event.ID,
	})
	return nil
}
