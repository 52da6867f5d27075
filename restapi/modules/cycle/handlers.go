// Package cycle implements the REST API handlers for the correlation cycle.
package cycle

import (
	"context"

	"github.com/cybersecalert/correlator-backend/engine"
	"github.com/gofiber/fiber/v2"
)

// PostTrigger starts a correlation cycle on demand. The cycle outlives the
// HTTP request; the engine's busy guard serializes concurrent triggers, so a
// cycle that is already running is reported with 409.
func PostTrigger(eng *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if eng.Status().Running {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Correlation cycle already in progress",
			})
		}

		go func() {
			// The guard inside RunCycle is authoritative; a lost race here
			// is a no-op, not a double run.
			_ = eng.RunCycle(context.Background())
		}()

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"success": true,
			"message": "Correlation cycle started",
		})
	}
}

// GetStatus returns the outcome of the most recent cycle
func GetStatus(eng *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(eng.Status())
	}
}
