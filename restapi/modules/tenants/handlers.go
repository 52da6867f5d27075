// Package tenants implements the REST API handlers for tenant and asset
// registration.
package tenants

import (
	"github.com/cybersecalert/correlator-backend/database"
	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
	"github.com/gofiber/fiber/v2"
)

// PostTenant registers a new tenant
func PostTenant(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tenant model.Tenant
		if err := c.BodyParser(&tenant); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body: " + err.Error(),
			})
		}

		if util.IsEmpty(tenant.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "email is required",
			})
		}
		tenant.ObjType = "Tenant"

		store := database.NewTenantStore(db)
		key, err := store.Create(c.Context(), &tenant)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to save tenant: " + err.Error(),
			})
		}
		tenant.Key = key

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"tenant":  tenant,
		})
	}
}

// GetTenants lists all tenants
func GetTenants(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := database.NewTenantStore(db)
		tenants, err := store.List(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to list tenants: " + err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"count":   len(tenants),
			"tenants": tenants,
		})
	}
}

// PostAsset registers or updates an asset for a tenant. Assets are upserted
// by their natural identity (tenant, name, version).
func PostAsset(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var asset model.Asset
		if err := c.BodyParser(&asset); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body: " + err.Error(),
			})
		}

		if util.IsEmpty(asset.TenantID) || util.IsEmpty(asset.Name) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "tenant_id and name are required",
			})
		}
		if asset.AssetType == "" {
			asset.AssetType = model.AssetTypeSoftware
		}
		asset.ObjType = "Asset"

		inv := database.NewAssetInventory(db)
		key, err := inv.UpsertAsset(c.Context(), &asset)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to save asset: " + err.Error(),
			})
		}
		asset.Key = key

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"asset":   asset,
		})
	}
}
