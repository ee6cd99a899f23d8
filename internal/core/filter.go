// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"strings"

	"github.com/passkeep/passkeep/internal/model"
)

// EntrySearcherFunc is a lightweight adapter type so core doesn't need to
// import the db searcher interfaces. Callers may pass a function that
// performs server-side searching and returns ([]model.VaultEntry, error).
type EntrySearcherFunc func(query string) ([]model.VaultEntry, error)

// FilterEntries filters vault entries by the provided query. If searcher is
// non-nil it is preferred when it returns a non-empty result with no error;
// otherwise a local in-memory fallback matches the query against every
// visible field. The password is never searched.
func FilterEntries(entries []model.VaultEntry, query string, searcher EntrySearcherFunc) []model.VaultEntry {
	if query == "" {
		return entries
	}

	localResults := make([]model.VaultEntry, 0, len(entries))
	for _, e := range entries {
		combined := e.Title + " " + e.Username + " " + e.URL + " " + e.Notes + " " + e.Category
		if ContainsIgnoreCase(combined, query) {
			localResults = append(localResults, e)
		}
	}

	if searcher != nil {
		if res, err := searcher(query); err == nil && len(res) > 0 {
			return res
		}
	}

	return localResults
}

// ContainsIgnoreCase reports whether substr is within s, case-insensitive.
func ContainsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
