package matcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAliasFile(t *testing.T) {
	content := `aliases:
  paloalto: ["PAN", "Palo Alto Networks"]
  microsoft: ["windows-team"]
`
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	m := New()
	if err := m.LoadAliasFile(path); err != nil {
		t.Fatalf("LoadAliasFile: %v", err)
	}

	if !m.FuzzyMatch("paloalto", "PAN") {
		t.Error("new alias from file not applied")
	}
	if !m.FuzzyMatch("Microsoft", "windows-team") {
		t.Error("override alias not applied")
	}
	// File entries replace the built-in aliases for that canonical name
	if m.FuzzyMatch("Microsoft", "MSFT") {
		t.Error("built-in alias survived an override from the file")
	}
}

func TestLoadAliasFileMissing(t *testing.T) {
	m := New()
	if err := m.LoadAliasFile("/nonexistent/aliases.yaml"); err == nil {
		t.Error("LoadAliasFile succeeded on a missing file")
	}
}
