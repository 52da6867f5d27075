package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChatWebhookChannel posts a Slack-compatible text payload to a chat
// webhook URL. Sends are fire-and-forget with no retry.
type ChatWebhookChannel struct {
	WebhookURL string
	Client     *http.Client
}

// NewChatWebhookChannel creates a chat webhook channel with a 10s timeout
func NewChatWebhookChannel(webhookURL string) *ChatWebhookChannel {
	return &ChatWebhookChannel{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the channel in logs and dispatch outcomes
func (c *ChatWebhookChannel) Name() string { return "chat-webhook" }

// Send posts the notification text to the chat webhook
func (c *ChatWebhookChannel) Send(ctx context.Context, msg Message) error {
	return postJSON(ctx, c.Client, c.WebhookURL, map[string]string{"text": msg.Text}, nil)
}

// GenericWebhookChannel posts the alert as a JSON document to an arbitrary
// webhook URL. Sends are fire-and-forget with no retry.
type GenericWebhookChannel struct {
	WebhookURL string
	Client     *http.Client
}

// NewGenericWebhookChannel creates a generic webhook channel with a 10s timeout
func NewGenericWebhookChannel(webhookURL string) *GenericWebhookChannel {
	return &GenericWebhookChannel{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the channel in logs and dispatch outcomes
func (c *GenericWebhookChannel) Name() string { return "webhook" }

// Send posts the alert metadata to the webhook
func (c *GenericWebhookChannel) Send(ctx context.Context, msg Message) error {
	payload := map[string]interface{}{
		"message":     msg.Text,
		"alert_id":    msg.Alert.Key,
		"tenant_id":   msg.Alert.TenantID,
		"asset_id":    msg.Alert.AssetID,
		"cve_id":      msg.Alert.CveID,
		"advisory_id": msg.Alert.AdvisoryID,
		"severity":    msg.Alert.Severity,
		"score":       msg.Alert.Score,
		"source_url":  msg.Alert.SourceURL,
	}
	return postJSON(ctx, c.Client, c.WebhookURL, payload, nil)
}

// postJSON posts a JSON body and treats any non-2xx status as failure
func postJSON(ctx context.Context, client *http.Client, url string, payload interface{}, headers map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
