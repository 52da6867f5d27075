package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
)

// processVulnerability matches one record against the tenant/asset snapshot
// and creates alerts for every affected pair. The record is marked processed
// afterwards so later cycles skip the matching work.
func (e *Engine) processVulnerability(ctx context.Context, record *model.VulnerabilityRecord, pairs []model.TenantAsset) error {
	if record.ID == "" || e.tracker.Seen(record.ID) {
		return nil
	}

	for _, pair := range pairs {
		if !pair.Tenant.Active {
			continue
		}
		if !e.matcher.IsAffected(pair.Asset, *record) {
			continue
		}
		if err := e.createVulnerabilityAlert(ctx, record, pair); err != nil {
			return err
		}
	}

	e.tracker.Mark(record.ID)
	return nil
}

// processAdvisory matches one vendor advisory against the snapshot on vendor
// alone and creates alerts for every affected pair
func (e *Engine) processAdvisory(ctx context.Context, advisory *model.AdvisoryRecord, pairs []model.TenantAsset) error {
	if advisory.ID == "" || e.tracker.Seen(advisory.ID) {
		return nil
	}

	for _, pair := range pairs {
		if !pair.Tenant.Active {
			continue
		}
		if !e.matcher.IsAffectedByAdvisory(pair.Asset, *advisory) {
			continue
		}
		if err := e.createAdvisoryAlert(ctx, advisory, pair); err != nil {
			return err
		}
	}

	e.tracker.Mark(advisory.ID)
	return nil
}

// createVulnerabilityAlert runs the idempotent alert creation flow for one
// (tenant, asset, CVE) triple: existence check, enrichment, insert, dispatch,
// status update, audit.
func (e *Engine) createVulnerabilityAlert(ctx context.Context, record *model.VulnerabilityRecord, pair model.TenantAsset) error {
	exists, err := e.alerts.Exists(ctx, pair.Tenant.Key, pair.Asset.Key, record.ID)
	if err != nil {
		return &StoreError{Op: "exists", Err: err}
	}
	if exists {
		// Duplicate alert: idempotent no-op, not an error
		return nil
	}

	// Best-effort enrichment; the alert is created with the original fields
	// when the secondary source is unavailable.
	if e.enricher != nil {
		if enrichment, err := e.enricher.Enrich(ctx, record.ID); err != nil {
			e.logger.Sugar().Warnf("%v", &EnrichmentError{CveID: record.ID, Err: err})
		} else {
			record.Merge(enrichment)
		}
	}

	alert := model.NewAlert(pair.Tenant.Key, pair.Asset.Key)
	alert.CveID = record.ID
	alert.Title = record.Title
	alert.Description = record.Description
	alert.Severity = record.Severity
	alert.Score = record.Score
	alert.SourceURL = record.SourceURL
	alert.Remediation = record.Remediation
	applyVersionComponents(alert, pair.Asset.Version)

	key, err := e.alerts.Insert(ctx, alert)
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	alert.Key = key

	e.finishAlert(ctx, alert, pair.Tenant, "CVE", record.ID)
	return nil
}

// createAdvisoryAlert runs the same creation flow for one vendor advisory.
// Advisories are not enriched.
func (e *Engine) createAdvisoryAlert(ctx context.Context, advisory *model.AdvisoryRecord, pair model.TenantAsset) error {
	exists, err := e.alerts.Exists(ctx, pair.Tenant.Key, pair.Asset.Key, advisory.ID)
	if err != nil {
		return &StoreError{Op: "exists", Err: err}
	}
	if exists {
		return nil
	}

	alert := model.NewAlert(pair.Tenant.Key, pair.Asset.Key)
	alert.AdvisoryID = advisory.ID
	alert.Title = advisory.Title
	alert.Description = advisory.Description
	alert.Severity = advisory.Severity
	alert.SourceURL = advisory.SourceURL
	applyVersionComponents(alert, pair.Asset.Version)

	key, err := e.alerts.Insert(ctx, alert)
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	alert.Key = key

	e.finishAlert(ctx, alert, pair.Tenant, "Advisory", advisory.ID)
	return nil
}

// finishAlert dispatches the alert, wires the dispatch outcome into the
// alert status, and emits the audit entry and lifecycle event. None of these
// steps can fail alert creation; the alert is already persisted.
func (e *Engine) finishAlert(ctx context.Context, alert *model.Alert, tenant model.Tenant, targetType, targetID string) {
	outcome := e.dispatcher.Dispatch(ctx, *alert, tenant)

	// Alerts with no configured channels stay pending.
	if outcome.Attempted > 0 {
		now := time.Now().UTC()
		var transitionErr error
		if outcome.Succeeded() {
			transitionErr = alert.MarkSent(now)
		} else {
			transitionErr = alert.MarkFailed()
		}
		if transitionErr == nil {
			if err := e.alerts.UpdateStatus(ctx, alert.Key, alert.Status, now); err != nil {
				e.logger.Sugar().Warnf("Failed to update alert %s status to %s: %v", alert.Key, alert.Status, err)
			}
		}
	}

	entry := model.NewAuditEntry(model.ActorSystem, "create_alert")
	entry.TargetType = targetType
	entry.TargetID = targetID
	entry.Detail = fmt.Sprintf("alert %s (%s) for tenant %s asset %s, status %s",
		alert.Key, alert.Severity, alert.TenantID, alert.AssetID, alert.Status)
	if err := e.audit.Append(ctx, entry); err != nil {
		e.logger.Sugar().Warnf("Failed to append audit entry for alert %s: %v", alert.Key, err)
	}

	if e.events != nil {
		if err := e.events.PublishAlertCreated(ctx, *alert); err != nil {
			e.logger.Sugar().Warnf("Failed to publish alert.created event for %s: %v", alert.Key, err)
		}
	}

	e.logger.Sugar().Infof("Created %s alert %s for tenant %s (status %s)",
		targetType, targetID, tenant.Email, alert.Status)
}

// applyVersionComponents stores the asset's parsed version on the alert for
// indexed queries
func applyVersionComponents(alert *model.Alert, version string) {
	parsed := util.ParseSemanticVersion(version)
	alert.AssetVersionMajor = parsed.Major
	alert.AssetVersionMinor = parsed.Minor
	alert.AssetVersionPatch = parsed.Patch
}
