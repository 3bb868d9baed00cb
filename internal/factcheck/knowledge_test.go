package factcheck

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadKnowledgeTable_OverridesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	yaml := `
- topic: Local Override
  triggers:
    - ["earth", "flat"]
  verified: true
  confidence: 0.5
  facts:
    - "operator-supplied override"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadKnowledgeTable(path)
	if err != nil {
		t.Fatalf("LoadKnowledgeTable: %v", err)
	}

	// File entries are consulted before the built-in corpus.
	entry, ok := table.Lookup("the earth is flat")
	if !ok {
		t.Fatal("expected a match")
	}
	if entry.Topic != "Local Override" || !entry.Verified {
		t.Errorf("expected override entry, got %+v", entry)
	}

	// Built-ins still answer topics the file does not cover.
	if _, ok := table.Lookup("vaccines cause autism"); !ok {
		t.Error("expected built-in entry to survive the merge")
	}
}

func TestLoadKnowledgeTable_Errors(t *testing.T) {
	if _, err := LoadKnowledgeTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{invalid: [yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKnowledgeTable(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
