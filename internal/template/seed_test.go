package template

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeedFile(t, `
templates:
  - name: Greeting Card
    body: "Dear {name}, {message}"
    variables: [name, message]
  - name: Sign Off
    body: "Regards, {sender}"
    variables: [sender]
`)

	records, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != "greeting_card" {
		t.Errorf("id = %q, want greeting_card", records[0].ID)
	}
	if records[1].Body != "Regards, {sender}" {
		t.Errorf("body = %q", records[1].Body)
	}

	reg := NewRegistry("greeting_card")
	if errs := reg.Upsert(records); len(errs) != 0 {
		t.Fatalf("upsert rejected valid seed: %v", errs)
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSeed_InvalidYAML(t *testing.T) {
	path := writeSeedFile(t, "templates: [not: valid: yaml")
	if _, err := LoadSeed(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
