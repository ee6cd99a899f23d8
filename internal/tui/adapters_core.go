// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/model"
)

// Thin adapters mapping package db onto the narrow reader interfaces that
// internal/core consumes for dashboard aggregation. They go through the
// Default* accessors so tests can swap in fakes.

// dashboardEntryReader serves vault entries to core.BuildDashboardData.
type dashboardEntryReader struct{}

func (dashboardEntryReader) GetAllEntries() ([]model.VaultEntry, error) {
	if s := db.DefaultEntrySearcher(); s != nil {
		return s.SearchEntries("")
	}
	return db.GetAllEntries()
}

// dashboardProfileReader serves the unlock profile to core.BuildDashboardData.
type dashboardProfileReader struct{}

func (dashboardProfileReader) GetProfile() (*model.Profile, error) {
	return db.GetProfile()
}

// dashboardAuditReader serves audit log entries to core.BuildDashboardData.
type dashboardAuditReader struct{}

func (dashboardAuditReader) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	if s := db.DefaultAuditSearcher(); s != nil {
		return s.GetAllAuditLogEntries()
	}
	return db.GetAllAuditLogEntries()
}
