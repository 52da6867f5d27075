// Package util provides utility functions for platform identifier parsing,
// CVSS scoring, version decomposition and environment handling.
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsNotEmpty checks if a string is not empty
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}

// Contains checks if a string slice contains an item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// SanitizeKey ensures the database key is valid for ArangoDB
// ArangoDB keys cannot contain spaces, slashes, or brackets
func SanitizeKey(key string) string {
	key = strings.TrimSpace(key)

	replacer := strings.NewReplacer(
		" ", "-",
		"/", "-",
		"[", "",
		"]", "",
		"(", "",
		")", "",
	)

	return replacer.Replace(key)
}

// ParsedVersion holds parsed semantic version components
type ParsedVersion struct {
	Major *int
	Minor *int
	Patch *int
}

// ParseSemanticVersion parses a version string into numeric components
// Returns nil values for components that cannot be parsed
func ParseSemanticVersion(version string) *ParsedVersion {
	if version == "" {
		return &ParsedVersion{}
	}

	// Strip common prefixes (e.g. "v1.2.3", "go1.22.2") before semver parsing
	cleanVersion := strings.TrimPrefix(version, "go")
	cleanVersion = strings.TrimPrefix(cleanVersion, "v")

	// Try semver parsing first
	v, err := semver.NewVersion(cleanVersion)
	if err == nil {
		major := int(v.Major())
		minor := int(v.Minor())
		patch := int(v.Patch())

		return &ParsedVersion{
			Major: &major,
			Minor: &minor,
			Patch: &patch,
		}
	}

	// Fallback: try to parse manually for versions like "1.2" or "2"
	parts := strings.Split(cleanVersion, ".")
	result := &ParsedVersion{}

	if len(parts) >= 1 {
		if major, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			result.Major = &major
		}
	}
	if len(parts) >= 2 {
		if minor, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			result.Minor = &minor
		}
	}
	if len(parts) >= 3 {
		// Remove any pre-release or build metadata
		patchStr := strings.FieldsFunc(parts[2], func(r rune) bool {
			return r == '-' || r == '+'
		})[0]
		if patch, err := strconv.Atoi(strings.TrimSpace(patchStr)); err == nil {
			result.Patch = &patch
		}
	}

	return result
}
