// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passkeep/passkeep/internal/core"
	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
)

// auditActionStyle picks a color for an audit action name. Destructive and
// suspicious actions stand out, additive ones are green.
func auditActionStyle(action string) lipgloss.Style {
	switch {
	case strings.HasPrefix(action, "DELETE_"),
		strings.HasPrefix(action, "REMOVE_"),
		strings.HasPrefix(action, "UNLOCK_"):
		return specialStyle
	case strings.HasPrefix(action, "ADD_"),
		strings.HasPrefix(action, "SET_"),
		strings.HasPrefix(action, "IMPORT_"),
		strings.HasPrefix(action, "MERGE_"):
		return successStyle
	default:
		return helpStyle
	}
}

// auditLogModel holds the state for the audit log table with its per-column
// filter.
type auditLogModel struct {
	table   table.Model
	entries []model.AuditLogEntry

	filter      string
	isFiltering bool
	// filterCol selects the filtered column: 0 all, 1 timestamp, 2 user,
	// 3 action, 4 details.
	filterCol int

	err      error
	width    int
	searcher db.AuditSearcher
}

// newAuditLogModelWithSearcher creates the audit log view. Pass nil to use
// the package default searcher.
func newAuditLogModelWithSearcher(s db.AuditSearcher) *auditLogModel {
	columns := []table.Column{
		{Title: i18n.T("audit_log.header.timestamp"), Width: 20},
		{Title: i18n.T("audit_log.header.user"), Width: 15},
		{Title: i18n.T("audit_log.header.action"), Width: 25},
		{Title: i18n.T("audit_log.header.details"), Width: 60},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s2 := table.DefaultStyles()
	s2.Header = s2.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s2.Selected = s2.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s2)

	if s == nil {
		s = db.DefaultAuditSearcher()
	}

	m := &auditLogModel{table: t, searcher: s}
	m.reload()
	return m
}

// reload fetches the audit log and rebuilds the table.
func (m *auditLogModel) reload() {
	var entries []model.AuditLogEntry
	var err error
	if m.searcher != nil {
		entries, err = m.searcher.GetAllAuditLogEntries()
	} else {
		entries, err = db.GetAllAuditLogEntries()
	}
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.entries = entries
	m.rebuildTableRows()
}

// entryMatches applies the filter to the selected column, or to every column
// when all are selected.
func (m *auditLogModel) entryMatches(entry model.AuditLogEntry, ts string) bool {
	if m.filter == "" {
		return true
	}
	switch m.filterCol {
	case 1:
		return core.ContainsIgnoreCase(ts, m.filter)
	case 2:
		return core.ContainsIgnoreCase(entry.Username, m.filter)
	case 3:
		return core.ContainsIgnoreCase(entry.Action, m.filter)
	case 4:
		return core.ContainsIgnoreCase(entry.Details, m.filter)
	default:
		return core.ContainsIgnoreCase(ts, m.filter) ||
			core.ContainsIgnoreCase(entry.Username, m.filter) ||
			core.ContainsIgnoreCase(entry.Action, m.filter) ||
			core.ContainsIgnoreCase(entry.Details, m.filter)
	}
}

// rebuildTableRows recomputes the visible rows from the filter.
func (m *auditLogModel) rebuildTableRows() {
	var rows []table.Row
	for _, entry := range m.entries {
		ts := entry.Timestamp.Format("2006-01-02 15:04:05")
		if !m.entryMatches(entry, ts) {
			continue
		}
		actionCell := auditActionStyle(entry.Action).Render(entry.Action)
		rows = append(rows, table.Row{ts, entry.Username, actionCell, entry.Details})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycleFilterCol moves the filtered column forward or backward.
func (m *auditLogModel) cycleFilterCol(delta int) {
	m.filterCol = (m.filterCol + delta + 5) % 5
	if m.filter != "" {
		m.rebuildTableRows()
	}
}

func (m *auditLogModel) Init() tea.Cmd { return nil }

func (m *auditLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 6)
		m.table.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		if m.isFiltering {
			switch msg.String() {
			case "esc":
				m.isFiltering = false
				m.filter = ""
				m.rebuildTableRows()
			case "enter":
				m.isFiltering = false
			case "tab":
				m.cycleFilterCol(1)
			case "shift+tab":
				m.cycleFilterCol(-1)
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.rebuildTableRows()
				}
			default:
				if msg.Type == tea.KeyRunes {
					m.filter += string(msg.Runes)
					m.rebuildTableRows()
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			if m.filter != "" {
				m.filter = ""
				m.rebuildTableRows()
				return m, nil
			}
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "q":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "/":
			m.isFiltering = true
			m.filter = ""
			m.rebuildTableRows()
			return m, nil
		case "tab":
			m.cycleFilterCol(1)
			return m, nil
		case "shift+tab":
			m.cycleFilterCol(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *auditLogModel) View() string {
	if m.err != nil {
		return errorStyle.Render(i18n.T("vault.error", m.err))
	}

	title := mainTitleStyle.Render("📜 " + i18n.T("audit_log.title"))

	var body string
	if len(m.entries) == 0 {
		body = helpStyle.Render(i18n.T("audit_log.empty"))
	} else {
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.footerView())
}

// filterColName returns the localized name of the filtered column.
func (m *auditLogModel) filterColName() string {
	switch m.filterCol {
	case 1:
		return i18n.T("audit_log.header.timestamp")
	case 2:
		return i18n.T("audit_log.header.user")
	case 3:
		return i18n.T("audit_log.header.action")
	case 4:
		return i18n.T("audit_log.header.details")
	default:
		return i18n.T("all")
	}
}

// footerView renders the key hints and the filter status on one bar.
func (m *auditLogModel) footerView() string {
	filterStatus := getFilterStatusLine(m.isFiltering, m.filter, FilterI18nKeys{
		Filtering:    "audit_log.filtering",
		FilterActive: "audit_log.filter_active",
		FilterHint:   "audit_log.filter_hint",
	}, m.filterColName())

	width := m.width
	if width == 0 {
		width = 100
	}
	return footerBarStyle.Render(AlignFooter(i18n.T("audit_log.footer"), filterStatus, width-2))
}
