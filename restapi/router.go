// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/cybersecalert/correlator-backend/database"
	"github.com/cybersecalert/correlator-backend/engine"
	"github.com/cybersecalert/correlator-backend/restapi/modules/admin"
	"github.com/cybersecalert/correlator-backend/restapi/modules/alerts"
	"github.com/cybersecalert/correlator-backend/restapi/modules/cycle"
	"github.com/cybersecalert/correlator-backend/restapi/modules/tenants"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
func SetupRoutes(app *fiber.App, db database.DBConnection, eng *engine.Engine, schema graphql.Schema) {

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Correlation cycle
	cycleGroup := api.Group("/cycle")
	cycleGroup.Post("/trigger", cycle.PostTrigger(eng))
	cycleGroup.Get("/status", cycle.GetStatus(eng))

	// Alerts
	api.Get("/alerts", alerts.GetAlerts(db))
	api.Get("/alerts/stats", alerts.GetAlertStats(db))
	api.Post("/alerts/:key/acknowledge", alerts.PostAcknowledge(db))

	// Tenant and asset registration
	api.Post("/tenants", tenants.PostTenant(db))
	api.Get("/tenants", tenants.GetTenants(db))
	api.Post("/assets", tenants.PostAsset(db))

	// Maintenance
	adminGroup := api.Group("/admin")
	adminGroup.Post("/dedup/reset", admin.PostDedupReset(eng))
	adminGroup.Get("/dedup/status", admin.GetDedupStatus(eng))

	log.Println("API routes initialized successfully")
}
