package model

import (
	"testing"
	"time"
)

func TestSeverityFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Severity
	}{
		{10.0, SeverityCritical},
		{9.0, SeverityCritical},
		{8.9, SeverityHigh},
		{7.0, SeverityHigh},
		{6.9, SeverityMedium},
		{4.0, SeverityMedium},
		{3.9, SeverityLow},
		{0.1, SeverityLow},
		{0.0, SeverityUnknown},
		{-1.0, SeverityUnknown},
	}

	for _, tt := range tests {
		if got := SeverityFromScore(tt.score); got != tt.want {
			t.Errorf("SeverityFromScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestAlertLifecycleTransitions(t *testing.T) {
	now := time.Now().UTC()

	alert := NewAlert("tenant1", "asset1")
	if alert.Status != AlertStatusPending {
		t.Fatalf("new alert status = %v, want pending", alert.Status)
	}

	if err := alert.MarkSent(now); err != nil {
		t.Fatalf("MarkSent from pending: %v", err)
	}
	if alert.SentAt == nil || !alert.SentAt.Equal(now) {
		t.Errorf("SentAt = %v, want %v", alert.SentAt, now)
	}

	// Sent is not pending anymore; a second transition must fail
	if err := alert.MarkSent(now); err == nil {
		t.Error("MarkSent from sent succeeded, want error")
	}
	if err := alert.MarkFailed(); err == nil {
		t.Error("MarkFailed from sent succeeded, want error")
	}

	if err := alert.Acknowledge(now); err != nil {
		t.Fatalf("Acknowledge from sent: %v", err)
	}
	if alert.Status != AlertStatusAcknowledged {
		t.Errorf("status = %v, want acknowledged", alert.Status)
	}

	// Acknowledged is terminal
	if err := alert.Acknowledge(now); err == nil {
		t.Error("Acknowledge from acknowledged succeeded, want error")
	}
}

func TestAlertAcknowledgeFromFailed(t *testing.T) {
	alert := NewAlert("tenant1", "asset1")
	if err := alert.MarkFailed(); err != nil {
		t.Fatalf("MarkFailed from pending: %v", err)
	}
	if err := alert.Acknowledge(time.Now()); err != nil {
		t.Errorf("Acknowledge from failed: %v", err)
	}
}

func TestAlertAcknowledgeFromPending(t *testing.T) {
	alert := NewAlert("tenant1", "asset1")
	if err := alert.Acknowledge(time.Now()); err == nil {
		t.Error("Acknowledge from pending succeeded, want error")
	}
}

func TestAlertVulnRef(t *testing.T) {
	alert := NewAlert("t", "a")
	alert.CveID = "CVE-2024-0001"
	if got := alert.VulnRef(); got != "CVE-2024-0001" {
		t.Errorf("VulnRef = %q, want CVE-2024-0001", got)
	}

	advisory := NewAlert("t", "a")
	advisory.AdvisoryID = "msrc-ADV240001"
	if got := advisory.VulnRef(); got != "msrc-ADV240001" {
		t.Errorf("VulnRef = %q, want msrc-ADV240001", got)
	}
}

func TestVulnerabilityRecordMerge(t *testing.T) {
	record := VulnerabilityRecord{
		ID:          "CVE-2024-0001",
		Score:       5.0,
		Severity:    SeverityMedium,
		Remediation: "upgrade to 2.4.55",
	}

	// Empty enrichment never clears populated fields
	record.Merge(Enrichment{})
	if record.Score != 5.0 || record.Remediation != "upgrade to 2.4.55" {
		t.Errorf("empty merge modified record: %+v", record)
	}

	// A better score re-derives the severity
	record.Merge(Enrichment{Score: 9.1, Exploitability: 3.9})
	if record.Score != 9.1 {
		t.Errorf("Score = %v, want 9.1", record.Score)
	}
	if record.Severity != SeverityCritical {
		t.Errorf("Severity = %v, want critical", record.Severity)
	}
	if record.Exploitability != 3.9 {
		t.Errorf("Exploitability = %v, want 3.9", record.Exploitability)
	}

	// Existing remediation text is kept
	record.Merge(Enrichment{Remediation: "different advice"})
	if record.Remediation != "upgrade to 2.4.55" {
		t.Errorf("Remediation overwritten: %q", record.Remediation)
	}
}
