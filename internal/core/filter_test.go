package core

import (
	"errors"
	"testing"

	"github.com/passkeep/passkeep/internal/model"
)

func TestContainsIgnoreCase(t *testing.T) {
	if !ContainsIgnoreCase("HelloWorld", "hell") {
		t.Fatalf("expected ContainsIgnoreCase to find substring ignoring case")
	}
	if !ContainsIgnoreCase("abc", "") {
		t.Fatalf("empty substr should return true")
	}
	if ContainsIgnoreCase("abc", "z") {
		t.Fatalf("expected false for non-matching substring")
	}
}

func TestFilterEntries_Local(t *testing.T) {
	entries := []model.VaultEntry{
		{ID: 1, Title: "GitHub", Username: "octocat", Category: "work"},
		{ID: 2, Title: "Bank", Username: "alice", URL: "https://bank.example", Category: "finance"},
		{ID: 3, Title: "Forum", Notes: "old account", Category: "personal"},
	}

	// Empty query returns the original slice.
	if got := FilterEntries(entries, "", nil); len(got) != 3 {
		t.Fatalf("empty query: got %d entries, want 3", len(got))
	}

	got := FilterEntries(entries, "FINANCE", nil)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("category match failed: %v", got)
	}

	got = FilterEntries(entries, "old account", nil)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("notes match failed: %v", got)
	}
}

func TestFilterEntries_NeverMatchesPassword(t *testing.T) {
	entries := []model.VaultEntry{
		{ID: 1, Title: "GitHub", Password: "hunter2"},
	}
	if got := FilterEntries(entries, "hunter2", nil); len(got) != 0 {
		t.Fatalf("filter matched against the password column: %v", got)
	}
}

func TestFilterEntries_PrefersSearcher(t *testing.T) {
	entries := []model.VaultEntry{{ID: 1, Title: "local"}}
	serverSide := []model.VaultEntry{{ID: 42, Title: "server"}}

	got := FilterEntries(entries, "anything", func(q string) ([]model.VaultEntry, error) {
		return serverSide, nil
	})
	if len(got) != 1 || got[0].ID != 42 {
		t.Fatalf("expected server-side result to win, got %v", got)
	}

	// A failing searcher falls back to the local filter.
	got = FilterEntries(entries, "local", func(q string) ([]model.VaultEntry, error) {
		return nil, errors.New("db down")
	})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected local fallback on searcher error, got %v", got)
	}

	// An empty server-side result also falls back.
	got = FilterEntries(entries, "local", func(q string) ([]model.VaultEntry, error) {
		return nil, nil
	})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected local fallback on empty searcher result, got %v", got)
	}
}
