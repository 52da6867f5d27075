// Package alerts implements the REST API handlers for alert operations.
package alerts

import (
	"log"
	"strconv"
	"strings"

	"github.com/cybersecalert/correlator-backend/database"
	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
	"github.com/gofiber/fiber/v2"
)

// GetAlerts lists a tenant's alerts, newest first. The status query parameter
// filters by lifecycle state when present.
func GetAlerts(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := c.Query("tenant_id")
		if util.IsEmpty(tenantID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "tenant_id is required",
			})
		}

		limit, _ := strconv.Atoi(c.Query("limit", "100"))
		status := c.Query("status")

		store := database.NewAlertStore(db)
		alerts, err := store.ListByTenant(c.Context(), tenantID, status, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to list alerts: " + err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(alerts),
			"alerts":  alerts,
		})
	}
}

// GetAlertStats aggregates alert counts by severity and status
func GetAlertStats(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := database.NewAlertStore(db)
		stats, err := store.Stats(c.Context(), c.Query("tenant_id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to aggregate alerts: " + err.Error(),
			})
		}
		return c.JSON(stats)
	}
}

// PostAcknowledge moves a sent or failed alert to the terminal acknowledged
// state and records the operator action in the audit trail
func PostAcknowledge(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// ArangoDB keys cannot carry spaces, slashes, or brackets
		key := util.SanitizeKey(c.Params("key"))

		store := database.NewAlertStore(db)
		alert, err := store.Acknowledge(c.Context(), key)
		if err != nil {
			status := fiber.StatusInternalServerError
			if strings.Contains(err.Error(), "invalid transition") {
				status = fiber.StatusConflict
			}
			return c.Status(status).JSON(fiber.Map{
				"success": false,
				"message": "Failed to acknowledge alert: " + err.Error(),
			})
		}

		actor := c.Query("actor")
		if actor == "" {
			actor = model.ActorSystem
		}
		entry := model.NewAuditEntry(actor, "acknowledge_alert")
		entry.TargetType = "Alert"
		entry.TargetID = key
		sink := database.NewAuditSink(db)
		if err := sink.Append(c.Context(), entry); err != nil {
			// The acknowledgement already happened; don't fail the request
			// over a lost audit entry.
			log.Printf("WARNING: failed to append audit entry for alert %s: %v", key, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"alert":   alert,
		})
	}
}
