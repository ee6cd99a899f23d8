// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"strings"

	"github.com/passkeep/passkeep/internal/model"
)

// TokenizeSearchQuery splits a query into lower-cased tokens, trimming whitespace.
// Returns nil for empty input.
func TokenizeSearchQuery(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	parts := strings.Fields(q)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FilterEntriesByTokens returns the subset of `entries` that match all tokens.
// Matching is case-insensitive and tests title, username, URL, notes, and
// category for substring containment; the password column is deliberately
// never searched. If `tokens` is nil or empty, the original slice is returned.
// This is the in-memory counterpart of SearchEntriesBun, used by the TUI to
// filter rows it has already loaded.
func FilterEntriesByTokens(entries []model.VaultEntry, tokens []string) []model.VaultEntry {
	if len(tokens) == 0 {
		return entries
	}
	out := make([]model.VaultEntry, 0, len(entries))
	for _, e := range entries {
		// prepare lowercase fields
		title := strings.ToLower(e.Title)
		user := strings.ToLower(e.Username)
		url := strings.ToLower(e.URL)
		notes := strings.ToLower(e.Notes)
		category := strings.ToLower(e.Category)

		matchedAll := true
		for _, tok := range tokens {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}
			if !strings.Contains(title, tok) && !strings.Contains(user, tok) &&
				!strings.Contains(url, tok) && !strings.Contains(notes, tok) &&
				!strings.Contains(category, tok) {
				matchedAll = false
				break
			}
		}
		if matchedAll {
			out = append(out, e)
		}
	}
	return out
}
