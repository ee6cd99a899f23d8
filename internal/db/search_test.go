// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"reflect"
	"testing"

	"github.com/passkeep/passkeep/internal/model"
)

func TestTokenizeSearchQuery_Empty(t *testing.T) {
	if got := TokenizeSearchQuery(""); got != nil {
		t.Fatalf("expected nil for empty input, got %#v", got)
	}
}

func TestTokenizeSearchQuery_Single(t *testing.T) {
	want := []string{"foo"}
	if got := TokenizeSearchQuery("FOO"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got %#v want %#v", got, want)
	}
}

func TestTokenizeSearchQuery_MultipleAndTrim(t *testing.T) {
	want := []string{"one", "two", "three"}
	if got := TokenizeSearchQuery("  One   Two Three  "); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: got %#v want %#v", got, want)
	}
}

func TestFilterEntriesByTokens(t *testing.T) {
	entries := []model.VaultEntry{
		{Title: "GitHub", Username: "alice", URL: "https://github.com", Category: "work"},
		{Title: "Bank", Username: "bob", URL: "https://bank.example", Notes: "shared account", Category: "finance"},
		{Title: "Forum", Username: "alice", URL: "https://forum.example", Category: "personal"},
	}

	// No tokens returns the input unchanged.
	if got := FilterEntriesByTokens(entries, nil); len(got) != len(entries) {
		t.Fatalf("expected all entries for nil tokens, got %d", len(got))
	}

	// Single token matches across fields, case-insensitively.
	got := FilterEntriesByTokens(entries, TokenizeSearchQuery("ALICE"))
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for token alice, got %d", len(got))
	}

	// All tokens must match (AND semantics).
	got = FilterEntriesByTokens(entries, TokenizeSearchQuery("alice work"))
	if len(got) != 1 || got[0].Title != "GitHub" {
		t.Fatalf("expected only GitHub for 'alice work', got %#v", got)
	}

	// Notes participate in matching.
	got = FilterEntriesByTokens(entries, TokenizeSearchQuery("shared"))
	if len(got) != 1 || got[0].Title != "Bank" {
		t.Fatalf("expected only Bank for 'shared', got %#v", got)
	}

	// Passwords never match.
	withSecret := []model.VaultEntry{{Title: "Mail", Password: "hunter2"}}
	if got := FilterEntriesByTokens(withSecret, TokenizeSearchQuery("hunter2")); len(got) != 0 {
		t.Fatalf("expected no match on password contents, got %d", len(got))
	}
}
