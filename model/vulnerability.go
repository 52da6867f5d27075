// Package model defines the data structures used by the correlator-backend,
// including vulnerability records, advisories, assets, tenants, alerts and
// audit entries.
package model

import "time"

// Severity represents the four-level severity rating derived from a CVSS score
type Severity string

const (
	// SeverityLow covers scores below 4.0
	SeverityLow Severity = "low"
	// SeverityMedium covers scores from 4.0 up to 7.0
	SeverityMedium Severity = "medium"
	// SeverityHigh covers scores from 7.0 up to 9.0
	SeverityHigh Severity = "high"
	// SeverityCritical covers scores of 9.0 and above
	SeverityCritical Severity = "critical"
	// SeverityUnknown is used for records without a usable score
	SeverityUnknown Severity = "unknown"
)

// SeverityFromScore converts a CVSS base score to a severity rating
func SeverityFromScore(score float64) Severity {
	switch {
	case score >= 9.0:
		return SeverityCritical
	case score >= 7.0:
		return SeverityHigh
	case score >= 4.0:
		return SeverityMedium
	case score > 0:
		return SeverityLow
	default:
		return SeverityUnknown
	}
}

// VulnerabilityRecord is the normalized form of a CVE disclosure produced by
// the feed ingestion layer. Records are immutable after ingestion except for
// the Merge path used by enrichment.
type VulnerabilityRecord struct {
	ID                string    `json:"id"`                 // e.g., "CVE-2024-0001"
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Severity          Severity  `json:"severity"`
	Score             float64   `json:"score"`
	Published         time.Time `json:"published"`
	AffectedPlatforms []string  `json:"affected_platforms"` // CPE or PURL strings
	References        []string  `json:"references"`
	SourceURL         string    `json:"source_url"`
	Exploitability    float64   `json:"exploitability,omitempty"`
	Remediation       string    `json:"remediation,omitempty"`
}

// Enrichment holds supplemental fields fetched from a secondary source
type Enrichment struct {
	Score          float64 `json:"score,omitempty"`
	Exploitability float64 `json:"exploitability,omitempty"`
	Remediation    string  `json:"remediation,omitempty"`
}

// Merge folds enrichment data into the record. Populated fields are never
// overwritten with empty ones.
func (r *VulnerabilityRecord) Merge(e Enrichment) {
	if e.Score > 0 {
		r.Score = e.Score
		r.Severity = SeverityFromScore(e.Score)
	}
	if e.Exploitability > 0 {
		r.Exploitability = e.Exploitability
	}
	if e.Remediation != "" && r.Remediation == "" {
		r.Remediation = e.Remediation
	}
}

// AdvisoryRecord is the normalized form of a vendor security advisory
type AdvisoryRecord struct {
	ID          string    `json:"id"`     // e.g., "cisco-sa-20240101-foo"
	Vendor      string    `json:"vendor"` // e.g., "Cisco"
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Published   time.Time `json:"published"`
	SourceURL   string    `json:"source_url"`
}
