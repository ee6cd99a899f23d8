// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the source tree. It collects
// every i18n.T() key used in Go code, compares the set with the primary
// locale, flags keys the other locales are missing, and points out string
// literals that look like they should have been translated.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

func main() {
	fmt.Println("🔍 Running i18n linter...")

	usedKeys, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("❌ Error finding used keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Found %d unique translation keys used in source code.\n", len(usedKeys))

	localeFiles, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ Error finding locale files: %v\n", err)
		os.Exit(1)
	}

	// The primary locale is the source of truth for the key set.
	primaryKeys, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fmt.Printf("❌ Error loading primary locale '%s': %v\n", primaryLocale, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d keys from primary locale (%s).\n\n", len(primaryKeys), primaryLocale)

	untranslated, err := findUntranslatedStrings(projectRoot, primaryKeys)
	if err != nil {
		fmt.Printf("❌ Error finding untranslated strings: %v\n", err)
		os.Exit(1)
	}

	hasOrphans := reportOrphanedKeys(primaryKeys, usedKeys)
	hasMissing := reportMissingKeys(localeFiles, primaryKeys)
	reportUntranslated(untranslated)

	fmt.Println("\n--- Linter Finished ---")
	switch {
	case hasMissing:
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	case hasOrphans:
		fmt.Println("⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Println("✅ All translation files are consistent!")
	}
}

// reportOrphanedKeys prints keys the primary locale defines but no source
// file references. Orphans are a warning, not a failure: keys assembled at
// runtime (strength.*, cracktime.*) legitimately show up here.
func reportOrphanedKeys(primary, used map[string]struct{}) bool {
	fmt.Println("--- Checking for Orphaned Keys (in primary locale but not used in code) ---")
	var orphaned []string
	for key := range primary {
		if _, ok := used[key]; !ok {
			orphaned = append(orphaned, key)
		}
	}
	if len(orphaned) == 0 {
		fmt.Println("  ✨ None found.")
		fmt.Println()
		return false
	}
	sort.Strings(orphaned)
	for _, key := range orphaned {
		fmt.Printf("  - Orphaned: %s\n", key)
	}
	fmt.Println()
	return true
}

// reportMissingKeys checks every secondary locale against the primary key
// set and prints what each one lacks.
func reportMissingKeys(localeFiles []string, primary map[string]struct{}) bool {
	fmt.Println("--- Checking for Missing Keys (in primary locale but not in others) ---")
	hasMissing := false
	for _, file := range localeFiles {
		if filepath.Base(file) == primaryLocale {
			continue
		}

		fmt.Printf("Checking %s:\n", file)
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("  - ❌ Error loading %s: %v\n", file, err)
			hasMissing = true
			continue
		}

		var missing []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) == 0 {
			fmt.Println("  ✨ All keys present.")
			continue
		}
		sort.Strings(missing)
		for _, key := range missing {
			fmt.Printf("  - Missing: %s\n", key)
		}
		hasMissing = true
	}
	return hasMissing
}

// reportUntranslated prints likely user-facing literals that bypass i18n.T.
// These stay warnings; the heuristics are too fuzzy to fail the build on.
func reportUntranslated(untranslated map[string][]Location) {
	fmt.Println("\n--- Checking for Potentially Untranslated Strings ---")
	if len(untranslated) == 0 {
		fmt.Println("  ✨ None found.")
		return
	}
	var literals []string
	for literal := range untranslated {
		literals = append(literals, literal)
	}
	sort.Strings(literals)
	for _, literal := range literals {
		loc := untranslated[literal][0]
		fmt.Printf("  - Potential: \"%s\" (found in %s:%d)\n", literal, loc.Filepath, loc.Line)
	}
}

// walkGoSources calls fn with the path and contents of every non-test Go
// file under root, skipping directories the Go toolchain would skip.
func walkGoSources(root string, fn func(path string, content []byte) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir(path, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(path, content)
	})
}

// skipDir reports whether a directory is excluded from source scans.
// Hidden and underscore-prefixed directories follow the Go toolchain rules;
// tools is excluded so the linter does not flag its own fixtures.
func skipDir(path, name string) bool {
	if path == projectRoot {
		return false
	}
	return name == "tools" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// usedKeyRe finds i18n.T("some.key") calls as well as bare string literals
// that follow the dotted key shape (keys passed around as data, like the
// vault_form prompts and the dashboard posture table).
var usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|\"([a-z]+\.[a-z\._]+)\"`)

// findUsedKeys scans all .go files for translation key references.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := walkGoSources(root, func(path string, content []byte) error {
		for _, match := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			if match[1] != "" {
				keys[match[1]] = struct{}{}
			} else if match[2] != "" {
				keys[match[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

var (
	// callRe matches function calls carrying a string literal argument.
	callRe = regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	// keyShapeRe matches literals that are themselves translation keys.
	keyShapeRe = regexp.MustCompile(`^[a-z_]+\.[a-z\._]+$`)
	// allCapsRe matches audit action constants like ADD_ENTRY.
	allCapsRe = regexp.MustCompile(`^[A-Z_]+$`)
	// bareFormatRe matches format strings with no prose in them.
	bareFormatRe = regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)
)

// ignoredCallees produce developer-facing output, never UI text.
var ignoredCallees = map[string]struct{}{
	"Print": {}, "Println": {}, "Printf": {},
	"Fatal": {}, "Fatalf": {}, "WriteString": {},
}

// sqlKeywords mark literals that are queries, not prose.
var sqlKeywords = []string{
	"SELECT ", "INSERT ", "UPDATE ", "DELETE ",
	"TRUNCATE ", "PRAGMA ", "CREATE ", "ALTER ", "DROP ",
}

// looksLikeCode filters literals that are code artifacts rather than text a
// user would read: known or key-shaped translation ids, short fragments,
// DSN/URL prefixes, SQL, Go time layouts, action constants, and format
// strings without words.
func looksLikeCode(literal string, knownKeys map[string]struct{}) bool {
	if _, ok := knownKeys[literal]; ok {
		return true
	}
	if keyShapeRe.MatchString(literal) {
		return true
	}
	if len(literal) < 4 {
		return true
	}
	if strings.HasPrefix(literal, "file:") || strings.HasPrefix(literal, "http") {
		return true
	}
	upper := strings.ToUpper(literal)
	for _, kw := range sqlKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	if strings.HasPrefix(literal, "2006-") {
		return true
	}
	if allCapsRe.MatchString(literal) {
		return true
	}
	if bareFormatRe.MatchString(literal) && !strings.Contains(literal, " ") {
		return true
	}
	return false
}

// findUntranslatedStrings scans for hardcoded strings that might need translation.
func findUntranslatedStrings(root string, knownKeys map[string]struct{}) (map[string][]Location, error) {
	untranslated := make(map[string][]Location)
	err := walkGoSources(root, func(path string, content []byte) error {
		for i, line := range strings.Split(string(content), "\n") {
			for _, match := range callRe.FindAllStringSubmatch(line, -1) {
				callee, literal := match[2], match[3]
				if _, ok := ignoredCallees[callee]; ok {
					continue
				}
				if looksLikeCode(literal, knownKeys) {
					continue
				}
				untranslated[literal] = append(untranslated[literal], Location{Filepath: path, Line: i + 1})
			}
		}
		return nil
	})
	return untranslated, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested locale tree into dot-separated keys.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
