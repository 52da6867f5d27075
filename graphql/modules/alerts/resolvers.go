// Package alerts implements the resolvers for alert queries.
package alerts

import (
	"context"

	"github.com/cybersecalert/correlator-backend/database"
)

// ResolveAlerts returns a tenant's alerts, newest first
func ResolveAlerts(db database.DBConnection, tenantID, status string, limit int) (interface{}, error) {
	ctx := context.Background()

	store := database.NewAlertStore(db)
	alerts, err := store.ListByTenant(ctx, tenantID, status, limit)
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(alerts))
	for _, alert := range alerts {
		results = append(results, map[string]interface{}{
			"key":         alert.Key,
			"tenant_id":   alert.TenantID,
			"asset_id":    alert.AssetID,
			"cve_id":      alert.CveID,
			"advisory_id": alert.AdvisoryID,
			"title":       alert.Title,
			"description": alert.Description,
			"severity":    string(alert.Severity),
			"score":       alert.Score,
			"status":      string(alert.Status),
			"source_url":  alert.SourceURL,
			"remediation": alert.Remediation,
			"created_at":  alert.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return results, nil
}

// ResolveAlertStats aggregates alert counts for one tenant, or globally when
// tenantID is empty
func ResolveAlertStats(db database.DBConnection, tenantID string) (interface{}, error) {
	ctx := context.Background()

	store := database.NewAlertStore(db)
	stats, err := store.Stats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total":        stats.Total,
		"critical":     stats.Critical,
		"high":         stats.High,
		"medium":       stats.Medium,
		"low":          stats.Low,
		"pending":      stats.Pending,
		"sent":         stats.Sent,
		"failed":       stats.Failed,
		"acknowledged": stats.Acknowledged,
	}, nil
}

// ResolveTenants lists all tenants
func ResolveTenants(db database.DBConnection) (interface{}, error) {
	ctx := context.Background()

	store := database.NewTenantStore(db)
	tenants, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(tenants))
	for _, tenant := range tenants {
		results = append(results, map[string]interface{}{
			"key":       tenant.Key,
			"email":     tenant.Email,
			"full_name": tenant.FullName,
			"company":   tenant.Company,
			"active":    tenant.Active,
		})
	}

	return results, nil
}
