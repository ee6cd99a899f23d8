// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"reflect"
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	if name, ok := av["en"]; !ok || name != "English" {
		t.Fatalf("unexpected display name for en: %v", av["en"])
	}
	if name, ok := av["de"]; !ok || name != "Deutsch" {
		t.Fatalf("unexpected display name for de: %v", av["de"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("all"); got != "All" {
		t.Fatalf("expected 'All', got %q", got)
	}

	// fmt-style formatting via template args
	if got := T("dashboard.entries", 7); got != "Entries: 7" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// switch language to German
	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("all"); got != "Alle" {
		t.Fatalf("expected German 'Alle', got %q", got)
	}

	SetLang("en")
}

func TestT_MissingKeyFallsBack(t *testing.T) {
	Init("en")
	if got := T("definitely.not.a.key"); got != "definitely.not.a.key" {
		t.Fatalf("expected message ID fallback, got %q", got)
	}
}

func TestSortedLocaleCodes(t *testing.T) {
	Init("en")
	got := SortedLocaleCodes()
	want := []string{"de", "en"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedLocaleCodes() = %v, want %v", got, want)
	}
}
