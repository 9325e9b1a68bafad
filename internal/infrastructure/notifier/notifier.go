package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"vendor-hub.backend/pkg/logger"
)

// Notifier is the email/notification dispatch collaborator. The provisioning
// service emits credential-delivery events through it; actual email sending
// lives behind the webhook endpoint.
type Notifier interface {
	Send(ctx context.Context, event Event)
}

// Event is one notification dispatch payload
type Event struct {
	Recipient   string            `json:"recipient"`
	TemplateKey string            `json:"templateKey"`
	Params      map[string]string `json:"params,omitempty"`
}

// Template keys
const (
	TemplateSetupCredentials = "merchant_setup_credentials"
	TemplateVerified         = "merchant_verified"
	TemplateDocumentReviewed = "merchant_document_reviewed"
)

// WebhookNotifier posts events to an external notification endpoint,
// fire-and-forget. Delivery failures are logged, never propagated.
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
}

// NewWebhookNotifier creates a webhook notifier. An empty endpoint makes it a
// log-only notifier, which is the development default.
func NewWebhookNotifier(endpoint string) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send dispatches an event in the background
func (n *WebhookNotifier) Send(ctx context.Context, event Event) {
	go n.deliver(event)
}

func (n *WebhookNotifier) deliver(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if n.endpoint == "" {
		logger.Info(ctx, "Notification event (no endpoint configured)",
			zap.String("recipient", event.Recipient),
			zap.String("template", event.TemplateKey),
		)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "Failed to marshal notification event", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		logger.Error(ctx, "Failed to create notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		logger.Error(ctx, "Notification dispatch failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn(ctx, "Notification endpoint returned non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("template", event.TemplateKey),
		)
		return
	}

	logger.Debug(ctx, "Notification dispatched",
		zap.String("recipient", event.Recipient),
		zap.String("template", event.TemplateKey),
	)
}
