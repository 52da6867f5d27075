// Package enrich provides best-effort augmentation of vulnerability records
// with supplemental CVSS and remediation data from a secondary source.
// Enrichment failures are never fatal to alert creation.
package enrich

import (
	"context"

	"github.com/cybersecalert/correlator-backend/model"
)

// Provider fetches supplemental fields for a vulnerability identifier.
// An empty Enrichment with a nil error means the provider had nothing to add.
type Provider interface {
	Enrich(ctx context.Context, cveID string) (model.Enrichment, error)
}
