// Package admin implements the REST API handlers for maintenance operations.
package admin

import (
	"github.com/cybersecalert/correlator-backend/engine"
	"github.com/gofiber/fiber/v2"
)

// PostDedupReset clears the processed-identifier cache. This is the only way
// the cache is ever cleared; the next cycle re-evaluates every feed record.
func PostDedupReset(eng *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cleared := eng.DedupSize()
		eng.ResetDedup()

		return c.JSON(fiber.Map{
			"success": true,
			"cleared": cleared,
		})
	}
}

// GetDedupStatus reports the size of the processed-identifier cache
func GetDedupStatus(eng *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"size": eng.DedupSize(),
		})
	}
}
