package engine

import (
	"context"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/notify"
)

// AlertStore is the externally-owned persistence surface for alerts. The
// existence check before insert is the authoritative idempotency guarantee
// for the composite identity (tenant, asset, vulnerability-or-advisory id).
type AlertStore interface {
	Exists(ctx context.Context, tenantID, assetID, vulnID string) (bool, error)
	Insert(ctx context.Context, alert *model.Alert) (string, error)
	UpdateStatus(ctx context.Context, key string, status model.AlertStatus, at time.Time) error
}

// AssetInventory provides the read-only tenant/asset snapshot for a cycle
type AssetInventory interface {
	ListActiveTenantAssets(ctx context.Context) ([]model.TenantAsset, error)
}

// AuditSink appends entries to the audit trail
type AuditSink interface {
	Append(ctx context.Context, entry model.AuditEntry) error
}

// Dispatcher fans one alert out across the tenant's notification channels
type Dispatcher interface {
	Dispatch(ctx context.Context, alert model.Alert, tenant model.Tenant) notify.Outcome
}

// EventPublisher emits alert lifecycle events to the message bus. Optional;
// a nil publisher disables event emission.
type EventPublisher interface {
	PublishAlertCreated(ctx context.Context, alert model.Alert) error
}
