// Package matcher decides whether a tenant asset is affected by a
// vulnerability record or vendor advisory. All matching is pure computation
// with no I/O so it can be exercised directly in tests.
package matcher

import (
	"strings"

	"github.com/cybersecalert/correlator-backend/model"
	"github.com/cybersecalert/correlator-backend/util"
)

// Matcher evaluates asset/record matches using structured identifier
// comparison and fuzzy vendor/product heuristics
type Matcher struct {
	aliases map[string][]string // normalized canonical name -> normalized aliases
}

// New creates a Matcher with the built-in vendor alias table
func New() *Matcher {
	return &Matcher{aliases: defaultAliases()}
}

// Normalize lowercases a string and strips all non-alphanumeric characters
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FuzzyMatch reports whether two vendor or product names refer to the same
// thing. Names match when their normalized forms are equal, when one contains
// the other, or when they resolve to the same canonical name through the
// vendor alias table. The relation is symmetric, and transitive across
// aliases of the same vendor.
func (m *Matcher) FuzzyMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}

	if na == nb {
		return true
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	return m.canonicalName(na) == m.canonicalName(nb)
}

// canonicalName resolves a normalized name through the alias table so that
// two aliases of the same vendor compare equal. Names outside the table
// resolve to themselves.
func (m *Matcher) canonicalName(n string) string {
	if _, ok := m.aliases[n]; ok {
		return n
	}
	for canonical, aliases := range m.aliases {
		if util.Contains(aliases, n) {
			return canonical
		}
	}
	return n
}

// IsAffected reports whether the asset is affected by the vulnerability
// record. A direct structured-identifier match wins; otherwise each affected
// platform identifier is decomposed and compared fuzzily on vendor and
// product, with the version policy applied.
func (m *Matcher) IsAffected(asset model.Asset, record model.VulnerabilityRecord) bool {
	// Direct match on the asset's structured identifiers
	if asset.CPE != "" && util.Contains(record.AffectedPlatforms, asset.CPE) {
		return true
	}
	if asset.PURL != "" && util.Contains(record.AffectedPlatforms, asset.PURL) {
		return true
	}

	// Fuzzy fallback requires both vendor and product on the asset
	if asset.Vendor == "" || asset.Product == "" {
		return false
	}

	for _, identifier := range record.AffectedPlatforms {
		platform, err := util.ParsePlatformID(identifier)
		if err != nil {
			continue
		}

		if !m.FuzzyMatch(asset.Vendor, platform.Vendor) {
			continue
		}
		if !m.FuzzyMatch(asset.Product, platform.Product) {
			continue
		}

		if versionsCompatible(asset.Version, platform.Version) {
			return true
		}
	}

	return false
}

// IsAffectedByAdvisory reports whether the asset is affected by a vendor
// advisory. Advisories carry no structured identifiers, so matching is on
// vendor alone.
func (m *Matcher) IsAffectedByAdvisory(asset model.Asset, advisory model.AdvisoryRecord) bool {
	if asset.Vendor == "" || advisory.Vendor == "" {
		return false
	}
	return m.FuzzyMatch(asset.Vendor, advisory.Vendor)
}

// versionsCompatible applies the version policy: an absent or wildcard version
// on either side is accepted regardless of the other; otherwise the two
// strings must be exactly equal. There is deliberately no semantic range
// evaluation here.
func versionsCompatible(assetVersion, recordVersion string) bool {
	if isWildcardVersion(assetVersion) || isWildcardVersion(recordVersion) {
		return true
	}
	return strings.EqualFold(assetVersion, recordVersion)
}

func isWildcardVersion(v string) bool {
	return v == "" || v == "*" || v == "-"
}
