package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
)

// emailRetryableStatuses lists the HTTP statuses worth retrying on the mail
// provider API
var emailRetryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// EmailChannel delivers alerts through a Mailgun-compatible messages API.
// Sends are retried up to three attempts with exponential backoff on
// retryable statuses; other failures are permanent.
type EmailChannel struct {
	BaseURL   string // e.g. https://api.mailgun.net/v3/<domain>
	APIKey    string
	FromEmail string
	Client    *http.Client
}

// NewEmailChannel creates an email channel for the given Mailgun domain
func NewEmailChannel(domain, apiKey, fromEmail string) *EmailChannel {
	return &EmailChannel{
		BaseURL:   "https://api.mailgun.net/v3/" + domain,
		APIKey:    apiKey,
		FromEmail: fromEmail,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the channel in logs and dispatch outcomes
func (c *EmailChannel) Name() string { return "email" }

// Send posts the alert email to the provider API
func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	subject := fmt.Sprintf("Security Alert: %s affects %s", msg.Alert.VulnRef(), msg.Alert.Title)
	body := buildEmailBody(msg)

	operation := func() error {
		form := url.Values{}
		form.Set("from", c.FromEmail)
		form.Set("to", msg.Tenant.Email)
		form.Set("subject", subject)
		form.Set("text", body)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.BaseURL+"/messages", strings.NewReader(form.Encode()))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.SetBasicAuth("api", c.APIKey)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		statusErr := fmt.Errorf("mail provider returned status %d", resp.StatusCode)
		if emailRetryableStatuses[resp.StatusCode] {
			return statusErr
		}
		return backoff.Permanent(statusErr)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 0

	// 3 attempts total: the initial try plus two retries
	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx))
}

// buildEmailBody renders the plain-text alert email
func buildEmailBody(msg Message) string {
	name := msg.Tenant.FullName
	if name == "" {
		name = msg.Tenant.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "A new security vulnerability affects one of your monitored assets.\n\n")
	fmt.Fprintf(&b, "Identifier: %s\n", msg.Alert.VulnRef())
	fmt.Fprintf(&b, "Severity:   %s\n", strings.ToUpper(string(msg.Alert.Severity)))
	if msg.Alert.Score > 0 {
		fmt.Fprintf(&b, "CVSS Score: %.1f\n", msg.Alert.Score)
	}
	if msg.Alert.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", msg.Alert.Description)
	}
	if msg.Alert.Remediation != "" {
		fmt.Fprintf(&b, "\nRemediation: %s\n", msg.Alert.Remediation)
	}
	if msg.Alert.SourceURL != "" {
		fmt.Fprintf(&b, "\nFull details: %s\n", msg.Alert.SourceURL)
	}
	return b.String()
}
