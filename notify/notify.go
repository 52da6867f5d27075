// Package notify fans alert notifications out to the configured delivery
// channels. Channel failures are isolated: one channel failing never prevents
// the others from being attempted, and never aborts alert creation.
package notify

import (
	"context"
	"fmt"

	"github.com/cybersecalert/correlator-backend/model"
)

// Message is the payload handed to every channel for one alert
type Message struct {
	Alert  model.Alert
	Tenant model.Tenant
	Text   string
}

// Channel is implemented once per delivery mechanism
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// BuildText renders the one-line notification text used by the chat, webhook
// and SIEM channels
func BuildText(alert model.Alert, tenant model.Tenant) string {
	return fmt.Sprintf("New %s alert for %s: %s (%s)",
		alert.Severity, tenant.Email, alert.Title, alert.VulnRef())
}
