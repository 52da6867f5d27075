package util

import (
	"fmt"
	"strings"

	"github.com/package-url/packageurl-go"
)

// PlatformID holds the vendor/product/version components decomposed from a
// structured platform identifier (CPE or PURL)
type PlatformID struct {
	Vendor  string
	Product string
	Version string
}

// ParsePlatformID decomposes a platform identifier string into its components.
// Supported forms:
//   - CPE 2.3 formatted strings: cpe:2.3:a:vendor:product:version:...
//   - legacy CPE 2.2 URIs: cpe:/a:vendor:product:version
//   - Package URLs: pkg:type/namespace/name@version
func ParsePlatformID(identifier string) (PlatformID, error) {
	switch {
	case strings.HasPrefix(identifier, "cpe:2.3:"):
		return parseCPE23(identifier)
	case strings.HasPrefix(identifier, "cpe:/"):
		return parseCPE22(identifier)
	case strings.HasPrefix(identifier, "pkg:"):
		return parsePURL(identifier)
	}
	return PlatformID{}, fmt.Errorf("unrecognized platform identifier: %s", identifier)
}

// parseCPE23 parses a CPE 2.3 formatted string
// Layout: cpe:2.3:part:vendor:product:version:update:edition:...
func parseCPE23(cpe string) (PlatformID, error) {
	parts := strings.Split(cpe, ":")
	if len(parts) < 5 {
		return PlatformID{}, fmt.Errorf("malformed CPE 2.3 string: %s", cpe)
	}

	id := PlatformID{
		Vendor:  cpeComponent(parts[3]),
		Product: cpeComponent(parts[4]),
	}
	if len(parts) > 5 {
		id.Version = cpeComponent(parts[5])
	}
	return id, nil
}

// parseCPE22 parses a legacy CPE 2.2 URI
// Layout: cpe:/part:vendor:product:version
func parseCPE22(cpe string) (PlatformID, error) {
	trimmed := strings.TrimPrefix(cpe, "cpe:/")
	parts := strings.Split(trimmed, ":")
	if len(parts) < 3 {
		return PlatformID{}, fmt.Errorf("malformed CPE 2.2 URI: %s", cpe)
	}

	id := PlatformID{
		Vendor:  cpeComponent(parts[1]),
		Product: cpeComponent(parts[2]),
	}
	if len(parts) > 3 {
		id.Version = cpeComponent(parts[3])
	}
	return id, nil
}

// parsePURL parses a Package URL; the namespace maps to vendor and the
// package name to product. Namespace-less PURLs use the package type as vendor.
func parsePURL(purl string) (PlatformID, error) {
	parsed, err := packageurl.FromString(purl)
	if err != nil {
		return PlatformID{}, err
	}

	vendor := parsed.Namespace
	if vendor == "" {
		vendor = parsed.Type
	}

	return PlatformID{
		Vendor:  vendor,
		Product: parsed.Name,
		Version: parsed.Version,
	}, nil
}

// cpeComponent normalizes a raw CPE field, treating the ANY ("*") and NA ("-")
// logical values as absent
func cpeComponent(raw string) string {
	if raw == "*" || raw == "-" {
		return ""
	}
	return strings.ReplaceAll(raw, "\\", "")
}
