// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/strength"
)

// FilterI18nKeys holds the translation keys for filter status messages.
type FilterI18nKeys struct {
	Filtering    string // e.g., "vault.filtering"
	FilterActive string // e.g., "vault.filter_active"
	FilterHint   string // e.g., "vault.filter_hint"
}

// getFilterStatusLine generates the standard filter status string for footers.
// It takes the filtering state, the filter text, a struct of i18n keys,
// and optional arguments for the format strings (like a column name).
func getFilterStatusLine(isFiltering bool, filterText string, keys FilterI18nKeys, formatArgs ...interface{}) string {
	allArgs := append(formatArgs, filterText)
	if isFiltering {
		return i18n.T(keys.Filtering, allArgs...)
	}
	if filterText != "" {
		return i18n.T(keys.FilterActive, allArgs...)
	}
	return i18n.T(keys.FilterHint)
}

// strengthStyle picks the display style for a strength tier.
func strengthStyle(label strength.Label) lipgloss.Style {
	switch label {
	case strength.Weak:
		return errorStyle
	case strength.Fair:
		return specialStyle
	case strength.Strong, strength.Excellent:
		return successStyle
	default:
		return itemStyle
	}
}

// LocalizedStrengthLabel translates a strength tier for display.
func LocalizedStrengthLabel(label strength.Label) string {
	return i18n.T("strength." + strings.ToLower(label.String()))
}

// crackUnitKeys maps each crack time unit to its singular and plural
// translation keys.
var crackUnitKeys = map[strength.Unit][2]string{
	strength.UnitSeconds:   {"cracktime.second", "cracktime.seconds"},
	strength.UnitMinutes:   {"cracktime.minute", "cracktime.minutes"},
	strength.UnitHours:     {"cracktime.hour", "cracktime.hours"},
	strength.UnitDays:      {"cracktime.day", "cracktime.days"},
	strength.UnitMonths:    {"cracktime.month", "cracktime.months"},
	strength.UnitYears:     {"cracktime.year", "cracktime.years"},
	strength.UnitCenturies: {"cracktime.century", "cracktime.centuries"},
}

// LocalizedCrackTime renders a crack time estimate in the active language,
// e.g. "3 Tage" instead of "3 days".
func LocalizedCrackTime(ct strength.CrackTime) string {
	keys, ok := crackUnitKeys[ct.Unit]
	if !ok {
		return i18n.T("cracktime.instant")
	}
	key := keys[1]
	if ct.Value == 1 {
		key = keys[0]
	}
	count := strconv.FormatFloat(ct.Value, 'f', 0, 64)
	if ct.Value >= 1e6 {
		count = strconv.FormatFloat(ct.Value, 'g', 3, 64)
	}
	return count + " " + i18n.T(key)
}

// package-level audit writer override for tui tests
var auditWriter db.AuditWriter

// SetAuditWriter sets a package-level AuditWriter for tui components.
func SetAuditWriter(w db.AuditWriter) {
	auditWriter = w
}

// ClearAuditWriter clears any previously set package-level AuditWriter for tui.
func ClearAuditWriter() {
	auditWriter = nil
}

// logAction writes an audit entry using the package override when present,
// otherwise falls back to the db package default.
func logAction(action, details string) error {
	if auditWriter != nil {
		return auditWriter.LogAction(action, details)
	}
	if w := db.DefaultAuditWriter(); w != nil {
		return w.LogAction(action, details)
	}
	return nil
}
