package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFlattenYAMLAndLoadKeys(t *testing.T) {
	// Create nested map and flatten
	m := map[string]interface{}{
		"vault": map[string]interface{}{
			"cli_added": "Added entry '%s' (%s).",
			"labels":    []interface{}{"one", "two"},
		},
		"all": "All",
	}
	keys := make(map[string]struct{})
	flattenYAML("", m, keys)
	if _, ok := keys["vault.cli_added"]; !ok {
		t.Fatalf("expected vault.cli_added in keys")
	}
	if _, ok := keys["vault.labels[0]"]; !ok {
		t.Fatalf("expected vault.labels[0] in keys")
	}

	// Write YAML to temp file and load via loadKeysFromLocale
	dir := t.TempDir()
	p := filepath.Join(dir, "test.yaml")
	data, _ := yaml.Marshal(m)
	if err := os.WriteFile(p, data, 0600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	got, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale failed: %v", err)
	}
	if _, ok := got["vault.cli_added"]; !ok {
		t.Fatalf("expected loaded key vault.cli_added")
	}
}

func TestFindUsedKeysAndUntranslatedStrings(t *testing.T) {
	dir := t.TempDir()
	// Create a Go file that contains i18n.T and some string literals
	src := `package foo
func f(){
	_ = i18n.T("vault.cli_added")
	foo("Visible message")
	bar("ok")
}`
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(dir, "sub", "a.go")
	if err := os.WriteFile(p, []byte(src), 0644); err != nil {
		t.Fatalf("write go: %v", err)
	}

	used, err := findUsedKeys(dir)
	if err != nil {
		t.Fatalf("findUsedKeys failed: %v", err)
	}
	if _, ok := used["vault.cli_added"]; !ok {
		t.Fatalf("expected vault.cli_added found in used keys")
	}

	// Prepare primary keys map (simulate loaded keys)
	all := map[string]struct{}{"vault.cli_added": {}}

	untranslated, err := findUntranslatedStrings(dir, all)
	if err != nil {
		t.Fatalf("findUntranslatedStrings failed: %v", err)
	}
	// Should find "Visible message"
	if _, ok := untranslated["Visible message"]; !ok {
		t.Fatalf("expected Visible message to be flagged as untranslated")
	}
	// Short string should be ignored
	if _, flagged := untranslated["ok"]; flagged {
		t.Fatalf("did not expect short literal to be flagged")
	}
}

func TestFindUsedKeysSkipsHiddenAndUnderscoreDirs(t *testing.T) {
	dir := t.TempDir()
	src := `package foo
func f(){ _ = i18n.T("hidden.key") }`
	for _, sub := range []string{"_vendorish", ".cache"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, sub, "a.go"), []byte(src), 0644); err != nil {
			t.Fatalf("write go: %v", err)
		}
	}

	used, err := findUsedKeys(dir)
	if err != nil {
		t.Fatalf("findUsedKeys failed: %v", err)
	}
	if _, ok := used["hidden.key"]; ok {
		t.Fatalf("expected keys under hidden/underscore dirs to be skipped")
	}
}

func TestLooksLikeCode(t *testing.T) {
	known := map[string]struct{}{"vault.cli_empty": {}}
	cases := []struct {
		literal string
		want    bool
	}{
		{"vault.cli_empty", true},        // known key
		{"audit_log.title", true},        // key-shaped
		{"ok", true},                     // too short
		{"file:memdb?mode=memory", true}, // DSN
		{"https://example.com", true},    // URL
		{"SELECT * FROM entries", true},  // SQL
		{"2006-01-02 15:04", true},       // time layout
		{"ADD_ENTRY", true},              // action constant
		{"%d:%d", true},                  // bare format string
		{"Something went wrong", false},  // real prose
		{"Maintenance timed out", false}, // real prose
	}
	for _, c := range cases {
		if got := looksLikeCode(c.literal, known); got != c.want {
			t.Errorf("looksLikeCode(%q) = %v, want %v", c.literal, got, c.want)
		}
	}
}
