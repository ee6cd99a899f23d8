// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"testing"
	"time"

	"github.com/passkeep/passkeep/internal/model"
	"github.com/passkeep/passkeep/internal/strength"
)

type fakeEntryReader struct {
	entries []model.VaultEntry
	err     error
}

func (f fakeEntryReader) GetAllEntries() ([]model.VaultEntry, error) { return f.entries, f.err }

type fakeProfileReader struct {
	profile *model.Profile
	err     error
}

func (f fakeProfileReader) GetProfile() (*model.Profile, error) { return f.profile, f.err }

type fakeAuditReader struct {
	logs []model.AuditLogEntry
	err  error
}

func (f fakeAuditReader) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	return f.logs, f.err
}

func TestBuildDashboardData_Aggregates(t *testing.T) {
	entries := []model.VaultEntry{
		{Title: "mail", Password: "pass123", Category: "personal"},
		{Title: "bank", Password: "Xk9$mP2&nQ5@wL8#", Category: "finance"},
		{Title: "forum", Password: "Yk3$mQ7&nR5@wM8#", Category: "personal"},
		{Title: "uncategorized", Password: "pass123"},
	}
	logs := make([]model.AuditLogEntry, 8)
	for i := range logs {
		logs[i] = model.AuditLogEntry{ID: len(logs) - i, Action: "ADD_ENTRY", Timestamp: time.Now()}
	}

	data, err := BuildDashboardData(
		fakeEntryReader{entries: entries},
		fakeProfileReader{profile: &model.Profile{Name: "alice"}},
		fakeAuditReader{logs: logs},
	)
	if err != nil {
		t.Fatalf("BuildDashboardData returned error: %v", err)
	}

	if data.EntryCount != 4 {
		t.Errorf("EntryCount = %d, want 4", data.EntryCount)
	}
	if data.CategoryCount != 2 {
		t.Errorf("CategoryCount = %d, want 2 (empty category ignored)", data.CategoryCount)
	}
	if !data.HasProfile || data.ProfileName != "alice" {
		t.Errorf("profile = (%v, %q), want (true, alice)", data.HasProfile, data.ProfileName)
	}
	if len(data.RecentLogs) != maxRecentLogs {
		t.Errorf("RecentLogs = %d entries, want %d", len(data.RecentLogs), maxRecentLogs)
	}
	if data.RecentLogs[0].ID != 8 {
		t.Errorf("RecentLogs[0].ID = %d, want the newest entry first", data.RecentLogs[0].ID)
	}

	if got := data.StrengthCounts[strength.Weak]; got != 2 {
		t.Errorf("StrengthCounts[Weak] = %d, want 2", got)
	}
	total := 0
	for _, n := range data.StrengthCounts {
		total += n
	}
	if total != 4 {
		t.Errorf("sum of StrengthCounts = %d, want 4", total)
	}
}

func TestBuildDashboardData_NoProfile(t *testing.T) {
	data, err := BuildDashboardData(fakeEntryReader{}, fakeProfileReader{}, fakeAuditReader{})
	if err != nil {
		t.Fatalf("BuildDashboardData returned error: %v", err)
	}
	if data.HasProfile || data.ProfileName != "" {
		t.Errorf("expected no profile, got (%v, %q)", data.HasProfile, data.ProfileName)
	}
	if data.EntryCount != 0 || len(data.RecentLogs) != 0 {
		t.Errorf("expected empty aggregates, got %+v", data)
	}
}

func TestBuildDashboardData_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := BuildDashboardData(fakeEntryReader{err: boom}, fakeProfileReader{}, fakeAuditReader{}); !errors.Is(err, boom) {
		t.Errorf("entry reader error not propagated, got %v", err)
	}
	if _, err := BuildDashboardData(fakeEntryReader{}, fakeProfileReader{err: boom}, fakeAuditReader{}); !errors.Is(err, boom) {
		t.Errorf("profile reader error not propagated, got %v", err)
	}
	if _, err := BuildDashboardData(fakeEntryReader{}, fakeProfileReader{}, fakeAuditReader{err: boom}); !errors.Is(err, boom) {
		t.Errorf("audit reader error not propagated, got %v", err)
	}
}
