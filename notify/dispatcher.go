package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
	"go.uber.org/zap"
)

// ChannelError marks one channel's delivery failure inside a fan-out. It
// never prevents the other channels from completing.
type ChannelError struct {
	Channel string
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("notification channel %s failed: %v", e.Channel, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }

// Defaults holds the process-wide channel configuration. A channel with no
// configuration here and no tenant override is skipped.
type Defaults struct {
	// Email (Mailgun-compatible)
	MailDomain  string
	MailAPIKey  string
	MailFrom    string
	// Chat webhook (Slack-compatible)
	ChatWebhookURL string
	// Generic webhook
	WebhookURL string
	// SIEM forwarding (Splunk HEC)
	SIEMHECURL   string
	SIEMHECToken string
}

// Dispatcher fans alerts out to every selected channel concurrently.
// Tenant-level webhook overrides take precedence over the process defaults.
type Dispatcher struct {
	defaults Defaults
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher over the process-wide channel defaults
func NewDispatcher(defaults Defaults, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{defaults: defaults, logger: logger}
}

// Outcome summarizes one fan-out: how many channels were attempted and which
// of them failed
type Outcome struct {
	Attempted int
	Failed    []string
	Errors    []*ChannelError
}

// Succeeded reports whether at least one channel was attempted and none failed
func (o Outcome) Succeeded() bool {
	return o.Attempted > 0 && len(o.Failed) == 0
}

// channelsFor selects the channels for one tenant, applying override
// precedence: a tenant-specific webhook URL wins over the process default.
func (d *Dispatcher) channelsFor(tenant model.Tenant) []Channel {
	var channels []Channel

	if util.IsNotEmpty(d.defaults.MailDomain) && util.IsNotEmpty(d.defaults.MailAPIKey) && util.IsNotEmpty(tenant.Email) {
		channels = append(channels, NewEmailChannel(d.defaults.MailDomain, d.defaults.MailAPIKey, d.defaults.MailFrom))
	}

	chatURL := tenant.ChatWebhookURL
	if util.IsEmpty(chatURL) {
		chatURL = d.defaults.ChatWebhookURL
	}
	if util.IsNotEmpty(chatURL) {
		channels = append(channels, NewChatWebhookChannel(chatURL))
	}

	webhookURL := tenant.WebhookURL
	if util.IsEmpty(webhookURL) {
		webhookURL = d.defaults.WebhookURL
	}
	if util.IsNotEmpty(webhookURL) {
		channels = append(channels, NewGenericWebhookChannel(webhookURL))
	}

	if util.IsNotEmpty(d.defaults.SIEMHECURL) && util.IsNotEmpty(d.defaults.SIEMHECToken) {
		channels = append(channels, NewSIEMChannel(d.defaults.SIEMHECURL, d.defaults.SIEMHECToken))
	}

	return channels
}

// Dispatch sends the alert to every selected channel concurrently. A failing
// channel is logged and recorded in the outcome; it never prevents the other
// channels from completing. No ordering is guaranteed across channels.
func (d *Dispatcher) Dispatch(ctx context.Context, alert model.Alert, tenant model.Tenant) Outcome {
	channels := d.channelsFor(tenant)
	msg := Message{
		Alert:  alert,
		Tenant: tenant,
		Text:   BuildText(alert, tenant),
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		outcome = Outcome{Attempted: len(channels)}
	)

	for _, ch := range channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()
			if err := ch.Send(ctx, msg); err != nil {
				cerr := &ChannelError{Channel: ch.Name(), Err: err}
				d.logger.Sugar().Warnf("Alert %s: %v", alert.VulnRef(), cerr)
				mu.Lock()
				outcome.Failed = append(outcome.Failed, ch.Name())
				outcome.Errors = append(outcome.Errors, cerr)
				mu.Unlock()
			}
		}(ch)
	}

	wg.Wait()
	return outcome
}
