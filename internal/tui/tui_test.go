// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
)

func TestInitialModelWithSearchers_PreservesSearchers(t *testing.T) {
	i18n.Init("en")
	es := &db.FakeEntrySearcher{}
	as := &db.FakeAuditSearcher{}

	m := initialModelWithSearchers(es, as)
	if m.entrySearcher != db.EntrySearcher(es) {
		t.Fatalf("expected injected entry searcher")
	}
	if m.auditSearcher != db.AuditSearcher(as) {
		t.Fatalf("expected injected audit searcher")
	}
	if m.state != menuView {
		t.Fatalf("expected menu as the starting view")
	}
	if len(m.menu.choices) != 5 {
		t.Fatalf("expected 5 menu choices, got %d", len(m.menu.choices))
	}
}

func TestMainModel_MenuNavigation(t *testing.T) {
	i18n.Init("en")
	m := initialModelWithSearchers(nil, nil)

	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m1 := mi.(mainModel)
	if m1.menu.cursor != 1 {
		t.Fatalf("expected cursor 1 after down, got %d", m1.menu.cursor)
	}

	mi, _ = m1.Update(tea.KeyMsg{Type: tea.KeyUp})
	m2 := mi.(mainModel)
	if m2.menu.cursor != 0 {
		t.Fatalf("expected cursor 0 after up, got %d", m2.menu.cursor)
	}

	// The cursor pins at the last choice.
	m2.menu.cursor = len(m2.menu.choices) - 1
	mi, _ = m2.Update(tea.KeyMsg{Type: tea.KeyDown})
	m3 := mi.(mainModel)
	if m3.menu.cursor != len(m3.menu.choices)-1 {
		t.Fatalf("expected pinned cursor, got %d", m3.menu.cursor)
	}
}

func TestMainModel_EnterOpensGenerator(t *testing.T) {
	i18n.Init("en")
	viper.Reset()
	m := initialModelWithSearchers(nil, nil)

	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m1 := mi.(mainModel)
	if m1.state != generateView {
		t.Fatalf("expected generator view, got %v", m1.state)
	}
	if m1.generator.password == "" {
		t.Fatalf("expected a generated password on entry")
	}

	// backToMenuMsg returns to the menu and refreshes the dashboard.
	mi, cmd := m1.Update(backToMenuMsg{})
	m2 := mi.(mainModel)
	if m2.state != menuView {
		t.Fatalf("expected menu view after back, got %v", m2.state)
	}
	if cmd == nil {
		t.Fatalf("expected a dashboard refresh command")
	}
}

func TestMainModel_AuditLogOpensWithSearcher(t *testing.T) {
	i18n.Init("en")
	as := &db.FakeAuditSearcher{Entries: []model.AuditLogEntry{
		{ID: 1, Timestamp: time.Now(), Username: "alice", Action: "ADD_ENTRY", Details: "added 'Email'"},
	}}
	m := initialModelWithSearchers(nil, as)
	m.menu.cursor = 3

	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m1 := mi.(mainModel)
	if m1.state != auditLogView {
		t.Fatalf("expected audit log view, got %v", m1.state)
	}
	if m1.auditLog == nil || len(m1.auditLog.entries) != 1 {
		t.Fatalf("expected audit log loaded through the injected searcher")
	}
}

func TestMainModel_LanguageChangedPreservesDimsAndSearchers(t *testing.T) {
	i18n.Init("en")
	es := &db.FakeEntrySearcher{}
	m := initialModelWithSearchers(es, nil)
	m.width = 111
	m.height = 33

	mi, _ := m.Update(languageChangedMsg{})
	m1 := mi.(mainModel)
	if m1.width != 111 || m1.height != 33 {
		t.Fatalf("expected preserved window size, got %dx%d", m1.width, m1.height)
	}
	if m1.entrySearcher != db.EntrySearcher(es) {
		t.Fatalf("expected preserved entry searcher")
	}
	if m1.state != menuView {
		t.Fatalf("expected menu view after re-init")
	}
}

func TestMainModel_DashboardDataRendered(t *testing.T) {
	i18n.Init("en")
	m := initialModelWithSearchers(nil, nil)

	mi, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m1 := mi.(mainModel)

	mi, _ = m1.Update(dashboardDataMsg{data: dashboardData{
		entryCount:    4,
		categoryCount: 2,
		hasProfile:    true,
		profileName:   "alice",
		unlocked:      false,
		recentLogs: []recentLogLine{
			{timestamp: "08-25 10:00", action: "ADD_ENTRY", details: "added 'Email'"},
		},
	}})
	m2 := mi.(mainModel)

	view := m2.View()
	if !strings.Contains(view, "Entries: 4") {
		t.Fatalf("expected entry count in dashboard, got:\n%s", view)
	}
	if !strings.Contains(view, "alice") {
		t.Fatalf("expected profile name in dashboard")
	}
	if !strings.Contains(view, "ADD_ENTRY") {
		t.Fatalf("expected recent activity in dashboard")
	}
}

func TestMainModel_SaveToVaultStoresPendingPassword(t *testing.T) {
	i18n.Init("en")
	m := initialModelWithSearchers(&db.FakeEntrySearcher{}, nil)

	// With no profile the save request opens the vault form directly; the
	// pending password must land in the password field.
	cmd := m.openVault()
	if cmd == nil {
		t.Fatalf("expected a command from openVault")
	}
	if m.state != vaultView || m.vault == nil {
		t.Fatalf("expected vault view")
	}

	m.pendingPassword = "s3cret-generated"
	_ = m.openVault()
	if got := m.vault.form.inputs[vaultFieldPassword].Value(); got != "s3cret-generated" {
		t.Fatalf("expected pending password seeded into the form, got %q", got)
	}
	if m.pendingPassword != "" {
		t.Fatalf("expected pending password cleared after seeding")
	}
}
