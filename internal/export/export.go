// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export renders vault entries into portable plaintext formats.
// All writers emit passwords in the clear; callers are responsible for
// warning the user and for where the output ends up.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/passkeep/passkeep/internal/model"
)

// Supported export formats.
const (
	FormatTXT  = "txt"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Write renders entries to w in the named format. Unknown formats are an error.
func Write(w io.Writer, format string, entries []model.VaultEntry) error {
	switch format {
	case FormatTXT:
		return WriteTXT(w, entries)
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatJSON:
		return WriteJSON(w, entries)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteTXT writes entries as human-readable blocks separated by blank lines.
// Optional fields are omitted when empty.
func WriteTXT(w io.Writer, entries []model.VaultEntry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Title:    %s\n", e.Title); err != nil {
			return err
		}
		if e.Username != "" {
			if _, err := fmt.Fprintf(w, "Username: %s\n", e.Username); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Password: %s\n", e.Password); err != nil {
			return err
		}
		if e.URL != "" {
			if _, err := fmt.Fprintf(w, "URL:      %s\n", e.URL); err != nil {
				return err
			}
		}
		if e.Notes != "" {
			if _, err := fmt.Fprintf(w, "Notes:    %s\n", e.Notes); err != nil {
				return err
			}
		}
		if e.Category != "" {
			if _, err := fmt.Fprintf(w, "Category: %s\n", e.Category); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Created:  %s\n", e.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

// csvHeader is the fixed column order for CSV exports.
var csvHeader = []string{"title", "username", "password", "url", "notes", "category", "created_at"}

// WriteCSV writes entries as CSV with a fixed header row.
func WriteCSV(w io.Writer, entries []model.VaultEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Title,
			e.Username,
			e.Password,
			e.URL,
			e.Notes,
			e.Category,
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("could not write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes entries as a pretty-printed JSON array.
func WriteJSON(w io.Writer, entries []model.VaultEntry) error {
	if entries == nil {
		entries = []model.VaultEntry{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("could not encode entries to json: %w", err)
	}
	return nil
}
