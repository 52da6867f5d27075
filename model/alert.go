package model

import (
	"fmt"
	"time"
)

// AlertStatus represents the delivery state of an alert
type AlertStatus string

const (
	// AlertStatusPending is the initial state before dispatch
	AlertStatusPending AlertStatus = "pending"
	// AlertStatusSent means every configured channel accepted the alert
	AlertStatusSent AlertStatus = "sent"
	// AlertStatusFailed means at least one channel rejected the alert
	AlertStatusFailed AlertStatus = "failed"
	// AlertStatusAcknowledged is terminal and never reverts
	AlertStatusAcknowledged AlertStatus = "acknowledged"
)

// Alert represents a deduplicated vulnerability notification for a tenant
// asset. The composite identity (tenant_id, asset_id, cve_id or advisory_id)
// is unique: the store's existence check enforces at most one alert per triple.
type Alert struct {
	Key         string      `json:"_key,omitempty"`
	TenantID    string      `json:"tenant_id"`
	AssetID     string      `json:"asset_id"`
	CveID       string      `json:"cve_id,omitempty"`
	AdvisoryID  string      `json:"advisory_id,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Severity    Severity    `json:"severity"`
	Score       float64     `json:"score,omitempty"`
	Status      AlertStatus `json:"status"`
	SourceURL   string      `json:"source_url,omitempty"`
	Remediation string      `json:"remediation,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	SentAt      *time.Time  `json:"sent_at,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ObjType     string      `json:"objtype,omitempty"`

	// Parsed asset version components for indexed queries
	AssetVersionMajor *int `json:"asset_version_major,omitempty"`
	AssetVersionMinor *int `json:"asset_version_minor,omitempty"`
	AssetVersionPatch *int `json:"asset_version_patch,omitempty"`
}

// NewAlert creates a new Alert in the pending state
func NewAlert(tenantID, assetID string) *Alert {
	return &Alert{
		TenantID:  tenantID,
		AssetID:   assetID,
		Status:    AlertStatusPending,
		ObjType:   "Alert",
		CreatedAt: time.Now().UTC(),
	}
}

// VulnRef returns the vulnerability or advisory identifier backing this alert
func (a *Alert) VulnRef() string {
	if a.CveID != "" {
		return a.CveID
	}
	return a.AdvisoryID
}

// MarkSent transitions the alert from pending to sent
func (a *Alert) MarkSent(at time.Time) error {
	if a.Status != AlertStatusPending {
		return fmt.Errorf("invalid transition %s -> %s", a.Status, AlertStatusSent)
	}
	a.Status = AlertStatusSent
	a.SentAt = &at
	return nil
}

// MarkFailed transitions the alert from pending to failed
func (a *Alert) MarkFailed() error {
	if a.Status != AlertStatusPending {
		return fmt.Errorf("invalid transition %s -> %s", a.Status, AlertStatusFailed)
	}
	a.Status = AlertStatusFailed
	return nil
}

// Acknowledge transitions the alert from sent or failed to acknowledged.
// Acknowledged is terminal.
func (a *Alert) Acknowledge(at time.Time) error {
	if a.Status != AlertStatusSent && a.Status != AlertStatusFailed {
		return fmt.Errorf("invalid transition %s -> %s", a.Status, AlertStatusAcknowledged)
	}
	a.Status = AlertStatusAcknowledged
	a.AcknowledgedAt = &at
	return nil
}

// AlertStats aggregates alert counts for dashboard queries
type AlertStats struct {
	Total        int `json:"total"`
	Critical     int `json:"critical"`
	High         int `json:"high"`
	Medium       int `json:"medium"`
	Low          int `json:"low"`
	Pending      int `json:"pending"`
	Sent         int `json:"sent"`
	Failed       int `json:"failed"`
	Acknowledged int `json:"acknowledged"`
}
