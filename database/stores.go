package database

import (
	"context"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/cybersecalert/correlator-backend/model"
)

// AlertStore persists alerts in the alert collection. The existence check
// backs the idempotency guarantee for the composite alert identity.
type AlertStore struct {
	db DBConnection
}

// NewAlertStore creates an AlertStore over an initialized connection
func NewAlertStore(db DBConnection) *AlertStore {
	return &AlertStore{db: db}
}

// Exists reports whether an alert already exists for the
// (tenant, asset, vulnerability-or-advisory id) triple
func (s *AlertStore) Exists(ctx context.Context, tenantID, assetID, vulnID string) (bool, error) {
	query := `
		FOR a IN alert
			FILTER a.tenant_id == @tenant
			FILTER a.asset_id == @asset
			FILTER a.cve_id == @vuln OR a.advisory_id == @vuln
			LIMIT 1
			RETURN a._key
	`
	bindVars := map[string]interface{}{
		"tenant": tenantID,
		"asset":  assetID,
		"vuln":   vulnID,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return false, err
	}
	defer cursor.Close()

	return cursor.HasMore(), nil
}

// Insert stores a new alert document and returns its key
func (s *AlertStore) Insert(ctx context.Context, alert *model.Alert) (string, error) {
	meta, err := s.db.Collections["alert"].CreateDocument(ctx, alert)
	if err != nil {
		return "", err
	}
	return meta.Key, nil
}

// UpdateStatus moves an alert to a new lifecycle status
func (s *AlertStore) UpdateStatus(ctx context.Context, key string, status model.AlertStatus, at time.Time) error {
	update := map[string]interface{}{
		"status":     status,
		"updated_at": at,
	}
	if status == model.AlertStatusSent {
		update["sent_at"] = at
	}
	if status == model.AlertStatusAcknowledged {
		update["acknowledged_at"] = at
	}

	_, err := s.db.Collections["alert"].UpdateDocument(ctx, key, update)
	return err
}

// Acknowledge transitions a sent alert to acknowledged. The read-check-write
// runs through the model so the transition rules live in one place.
func (s *AlertStore) Acknowledge(ctx context.Context, key string) (*model.Alert, error) {
	var alert model.Alert
	if _, err := s.db.Collections["alert"].ReadDocument(ctx, key, &alert); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := alert.Acknowledge(now); err != nil {
		return nil, err
	}

	if err := s.UpdateStatus(ctx, key, alert.Status, now); err != nil {
		return nil, err
	}
	alert.Key = key
	return &alert, nil
}

// ListByTenant returns a tenant's alerts, newest first, optionally filtered
// by status
func (s *AlertStore) ListByTenant(ctx context.Context, tenantID string, status string, limit int) ([]model.Alert, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		FOR a IN alert
			FILTER a.tenant_id == @tenant
			FILTER @status == "" OR a.status == @status
			SORT a.created_at DESC
			LIMIT @limit
			RETURN a
	`
	bindVars := map[string]interface{}{
		"tenant": tenantID,
		"status": status,
		"limit":  limit,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	alerts := []model.Alert{}
	for cursor.HasMore() {
		var alert model.Alert
		if _, err := cursor.ReadDocument(ctx, &alert); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// Stats aggregates a tenant's alerts by severity and status
func (s *AlertStore) Stats(ctx context.Context, tenantID string) (*model.AlertStats, error) {
	query := `
		LET tenantAlerts = (
			FOR a IN alert
				FILTER @tenant == "" OR a.tenant_id == @tenant
				RETURN a
		)
		RETURN {
			total: LENGTH(tenantAlerts),
			critical: LENGTH(tenantAlerts[* FILTER CURRENT.severity == "critical"]),
			high: LENGTH(tenantAlerts[* FILTER CURRENT.severity == "high"]),
			medium: LENGTH(tenantAlerts[* FILTER CURRENT.severity == "medium"]),
			low: LENGTH(tenantAlerts[* FILTER CURRENT.severity == "low"]),
			pending: LENGTH(tenantAlerts[* FILTER CURRENT.status == "pending"]),
			sent: LENGTH(tenantAlerts[* FILTER CURRENT.status == "sent"]),
			failed: LENGTH(tenantAlerts[* FILTER CURRENT.status == "failed"]),
			acknowledged: LENGTH(tenantAlerts[* FILTER CURRENT.status == "acknowledged"])
		}
	`
	bindVars := map[string]interface{}{
		"tenant": tenantID,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var stats model.AlertStats
	if _, err := cursor.ReadDocument(ctx, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// AssetInventory reads the tenant/asset snapshot used by a correlation cycle
type AssetInventory struct {
	db DBConnection
}

// NewAssetInventory creates an AssetInventory over an initialized connection
func NewAssetInventory(db DBConnection) *AssetInventory {
	return &AssetInventory{db: db}
}

// ListActiveTenantAssets joins assets to their owning tenants, skipping
// inactive tenants. The result is the matching snapshot for one cycle.
func (inv *AssetInventory) ListActiveTenantAssets(ctx context.Context) ([]model.TenantAsset, error) {
	query := `
		FOR t IN tenant
			FILTER t.active == true
			FOR a IN asset
				FILTER a.tenant_id == t._key
				RETURN { tenant: t, asset: a }
	`

	cursor, err := inv.db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	pairs := []model.TenantAsset{}
	for cursor.HasMore() {
		var pair model.TenantAsset
		if _, err := cursor.ReadDocument(ctx, &pair); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// UpsertAsset creates or replaces an asset by its natural identity
// (tenant, name, version)
func (inv *AssetInventory) UpsertAsset(ctx context.Context, asset *model.Asset) (string, error) {
	query := `
		UPSERT { tenant_id: @tenant, name: @name, version: @version }
		INSERT @doc
		UPDATE @doc
		IN asset
		RETURN NEW._key
	`
	bindVars := map[string]interface{}{
		"tenant":  asset.TenantID,
		"name":    asset.Name,
		"version": asset.Version,
		"doc":     asset,
	}

	cursor, err := inv.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return "", err
	}
	defer cursor.Close()

	var key string
	if _, err := cursor.ReadDocument(ctx, &key); err != nil {
		return "", err
	}
	return key, nil
}

// TenantStore manages tenant documents
type TenantStore struct {
	db DBConnection
}

// NewTenantStore creates a TenantStore over an initialized connection
func NewTenantStore(db DBConnection) *TenantStore {
	return &TenantStore{db: db}
}

// Get reads one tenant by key
func (s *TenantStore) Get(ctx context.Context, key string) (*model.Tenant, error) {
	var tenant model.Tenant
	if _, err := s.db.Collections["tenant"].ReadDocument(ctx, key, &tenant); err != nil {
		return nil, err
	}
	tenant.Key = key
	return &tenant, nil
}

// Create stores a new tenant and returns its key
func (s *TenantStore) Create(ctx context.Context, tenant *model.Tenant) (string, error) {
	meta, err := s.db.Collections["tenant"].CreateDocument(ctx, tenant)
	if err != nil {
		return "", err
	}
	return meta.Key, nil
}

// List returns all tenants
func (s *TenantStore) List(ctx context.Context) ([]model.Tenant, error) {
	query := `
		FOR t IN tenant
			SORT t.email ASC
			RETURN t
	`

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	tenants := []model.Tenant{}
	for cursor.HasMore() {
		var tenant model.Tenant
		if _, err := cursor.ReadDocument(ctx, &tenant); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, nil
}

// AuditSink appends entries to the audit collection
type AuditSink struct {
	db DBConnection
}

// NewAuditSink creates an AuditSink over an initialized connection
func NewAuditSink(db DBConnection) *AuditSink {
	return &AuditSink{db: db}
}

// Append stores one audit entry
func (s *AuditSink) Append(ctx context.Context, entry model.AuditEntry) error {
	_, err := s.db.Collections["audit"].CreateDocument(ctx, entry)
	return err
}

// ListByTarget returns the audit trail for one target, newest first
func (s *AuditSink) ListByTarget(ctx context.Context, targetID string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		FOR e IN audit
			FILTER e.target_id == @target
			SORT e.timestamp DESC
			LIMIT @limit
			RETURN e
	`
	bindVars := map[string]interface{}{
		"target": targetID,
		"limit":  limit,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: bindVars,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	entries := []model.AuditEntry{}
	for cursor.HasMore() {
		var entry model.AuditEntry
		if _, err := cursor.ReadDocument(ctx, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
