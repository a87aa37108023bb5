// Package notify delivers best-effort notifications for field and task
// activity. Delivery failures are counted and logged but never propagate
// to the request that triggered them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/metrics"
)

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, kind string, payload interface{}) error
}

// LogNotifier writes notifications to the structured log. Used when no
// webhook is configured.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(ctx context.Context, kind string, payload interface{}) error {
	logger.FromContext(ctx).Info("Notification", "kind", kind, "payload", payload)
	return nil
}

// WebhookNotifier POSTs notifications as JSON to a configured endpoint.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier creates a webhook notifier for the given URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type webhookBody struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, kind string, payload interface{}) error {
	body, err := json.Marshal(webhookBody{Kind: kind, Payload: payload, SentAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// SubscribeAll wires the notifier to every event type the service emits.
// Handlers swallow delivery errors after recording them: notifications are
// fire-and-forget by contract.
func SubscribeAll(bus event.Bus, notifier Notifier) {
	for _, t := range []event.Type{
		event.FieldCreated,
		event.FieldUpdated,
		event.FieldDeleted,
		event.FieldArchived,
		event.CropSelected,
		event.TaskCompleted,
	} {
		eventType := t
		bus.Subscribe(eventType, func(ctx context.Context, e event.Event) error {
			if err := notifier.Notify(ctx, string(eventType), e.Payload); err != nil {
				metrics.NotificationFailures.WithLabelValues(string(eventType)).Inc()
				logger.FromContext(ctx).Warn("Notification delivery failed",
					"kind", eventType, "error", err)
				return nil
			}
			metrics.NotificationsSent.WithLabelValues(string(eventType)).Inc()
			return nil
		})
	}
}
