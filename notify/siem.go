package notify

import (
	"context"
	"net/http"
	"time"
)

// SIEMChannel forwards alerts to a Splunk HTTP Event Collector endpoint.
// SIEM forwarding is a process-wide channel with no per-tenant override.
type SIEMChannel struct {
	HECURL   string
	HECToken string
	Client   *http.Client
}

// NewSIEMChannel creates a SIEM forwarder with a 10s timeout
func NewSIEMChannel(hecURL, hecToken string) *SIEMChannel {
	return &SIEMChannel{
		HECURL:   hecURL,
		HECToken: hecToken,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the channel in logs and dispatch outcomes
func (c *SIEMChannel) Name() string { return "siem" }

// Send posts the alert as an HEC event
func (c *SIEMChannel) Send(ctx context.Context, msg Message) error {
	payload := map[string]interface{}{
		"event":      msg.Text,
		"sourcetype": "cybersecalert:alert",
		"fields": map[string]interface{}{
			"tenant_id":   msg.Alert.TenantID,
			"asset_id":    msg.Alert.AssetID,
			"cve_id":      msg.Alert.CveID,
			"advisory_id": msg.Alert.AdvisoryID,
			"severity":    msg.Alert.Severity,
			"score":       msg.Alert.Score,
		},
	}
	headers := map[string]string{"Authorization": "Splunk " + c.HECToken}
	return postJSON(ctx, c.Client, c.HECURL, payload, headers)
}
