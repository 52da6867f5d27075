package model

import "time"

// AssetType represents the kind of technology asset being tracked
type AssetType string

const (
	// AssetTypeHardware represents a physical device
	AssetTypeHardware AssetType = "hardware"
	// AssetTypeSoftware represents an installed application or library
	AssetTypeSoftware AssetType = "software"
	// AssetTypeFirmware represents embedded device firmware
	AssetTypeFirmware AssetType = "firmware"
	// AssetTypeOperatingSystem represents an operating system installation
	AssetTypeOperatingSystem AssetType = "operating_system"
)

// Asset represents a tenant-owned technology asset tracked for vulnerability
// exposure. Assets are created and maintained by the inventory service; the
// correlation engine only reads them.
type Asset struct {
	Key         string    `json:"_key,omitempty"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	AssetType   AssetType `json:"asset_type"`
	Vendor      string    `json:"vendor,omitempty"`
	Product     string    `json:"product,omitempty"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	CPE         string    `json:"cpe,omitempty"`  // structured platform identifier
	PURL        string    `json:"purl,omitempty"` // package identifier for software assets
	ObjType     string    `json:"objtype,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAsset creates a new Asset instance with default values
func NewAsset() *Asset {
	now := time.Now().UTC()
	return &Asset{
		ObjType:   "Asset",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Tenant represents an isolated customer account owning assets and receiving
// alerts. Read-only to the correlation engine.
type Tenant struct {
	Key      string `json:"_key,omitempty"`
	Email    string `json:"email"` // default contact address
	FullName string `json:"full_name,omitempty"`
	Company  string `json:"company,omitempty"`
	Active   bool   `json:"active"`

	// Per-tenant notification overrides; empty means fall back to the
	// process-wide default for that channel.
	ChatWebhookURL string `json:"chat_webhook_url,omitempty"`
	WebhookURL     string `json:"webhook_url,omitempty"`

	ObjType string `json:"objtype,omitempty"`
}

// TenantAsset pairs an asset with its owning tenant for a cycle snapshot
type TenantAsset struct {
	Tenant Tenant `json:"tenant"`
	Asset  Asset  `json:"asset"`
}
