package matcher

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// defaultAliases returns the built-in vendor alias table. Keys and values are
// stored in normalized form.
func defaultAliases() map[string][]string {
	return map[string][]string{
		"microsoft": {"msft", "ms"},
		"cisco":     {"csco"},
		"fortinet":  {"forti"},
		"apache":    {"apachesoftwarefoundation"},
	}
}

// aliasFile is the YAML layout for a vendor alias override file:
//
//	aliases:
//	  microsoft: ["msft", "ms"]
//	  paloalto: ["pan", "paloaltonetworks"]
type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadAliasFile merges vendor aliases from a YAML file into the matcher's
// table. Entries for an existing canonical name replace the built-in aliases.
func (m *Matcher) LoadAliasFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read alias file: %w", err)
	}

	var parsed aliasFile
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return fmt.Errorf("failed to parse alias file: %w", err)
	}

	for canonical, aliases := range parsed.Aliases {
		normalized := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			if n := Normalize(alias); n != "" {
				normalized = append(normalized, n)
			}
		}
		m.aliases[Normalize(canonical)] = normalized
	}

	return nil
}
