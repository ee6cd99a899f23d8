// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core holds UI-independent vault logic shared by the CLI and TUI,
// such as dashboard aggregation and list filtering. It depends only on the
// model and strength packages so the views stay thin and testable.
package core

import (
	"github.com/passkeep/passkeep/internal/model"
	"github.com/passkeep/passkeep/internal/strength"
)

// EntryReader supplies the vault entries for aggregation.
type EntryReader interface {
	GetAllEntries() ([]model.VaultEntry, error)
}

// ProfileReader supplies the optional profile guarding the vault.
type ProfileReader interface {
	GetProfile() (*model.Profile, error)
}

// AuditReader supplies audit log entries, newest first.
type AuditReader interface {
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
}

// maxRecentLogs bounds the dashboard activity feed.
const maxRecentLogs = 5

// DashboardData holds aggregated values for the main dashboard.
type DashboardData struct {
	EntryCount     int
	CategoryCount  int
	StrengthCounts map[strength.Label]int
	ProfileName    string
	HasProfile     bool
	RecentLogs     []model.AuditLogEntry
}

// BuildDashboardData collects entries, the profile and recent audit logs and
// computes the aggregated metrics for the dashboard. Entry passwords are run
// through the strength analyzer to build the posture breakdown; they are
// never copied into the result.
func BuildDashboardData(er EntryReader, pr ProfileReader, ar AuditReader) (DashboardData, error) {
	var out DashboardData

	entries, err := er.GetAllEntries()
	if err != nil {
		return out, err
	}

	profile, err := pr.GetProfile()
	if err != nil {
		return out, err
	}

	logs, err := ar.GetAllAuditLogEntries()
	if err != nil {
		return out, err
	}

	out.EntryCount = len(entries)
	categories := make(map[string]struct{})
	out.StrengthCounts = make(map[strength.Label]int)
	for _, e := range entries {
		if e.Category != "" {
			categories[e.Category] = struct{}{}
		}
		out.StrengthCounts[strength.Analyze(e.Password).Label]++
	}
	out.CategoryCount = len(categories)

	if profile != nil {
		out.HasProfile = true
		out.ProfileName = profile.Name
	}

	if len(logs) > maxRecentLogs {
		out.RecentLogs = logs[:maxRecentLogs]
	} else {
		out.RecentLogs = logs
	}

	return out, nil
}
