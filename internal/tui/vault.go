// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passkeep/passkeep/internal/core"
	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
	"github.com/passkeep/passkeep/internal/strength"
)

// backToMenuMsg signals the router to return to the main menu.
type backToMenuMsg struct{}

// backToListMsg signals the vault view to leave the entry form and return to
// the table.
type backToListMsg struct{}

// vaultViewState tracks which part of the vault UI is active.
type vaultViewState int

const (
	vaultListView vaultViewState = iota
	vaultFormView
)

// vaultModel holds the state for the vault browser: the entry table, the
// filter, the delete confirmation dialog and the add/edit form.
type vaultModel struct {
	state            vaultViewState
	table            table.Model
	entries          []model.VaultEntry
	displayedEntries []model.VaultEntry
	filter           string
	isFiltering      bool

	isConfirmingDelete bool
	entryToDelete      *model.VaultEntry
	confirmCursor      int // 0 = no, 1 = yes

	form   vaultFormModel
	status string
	err    error
	width  int
	height int

	// searcher, when set, serves both the initial load and server-side
	// filtering. nil falls back to package db helpers.
	searcher db.EntrySearcher
}

// newVaultModelWithSearcher creates the vault browser. Pass nil to use the
// package default searcher.
func newVaultModelWithSearcher(s db.EntrySearcher) vaultModel {
	columns := []table.Column{
		{Title: i18n.T("vault.header.title"), Width: 24},
		{Title: i18n.T("vault.header.username"), Width: 18},
		{Title: i18n.T("vault.header.category"), Width: 14},
		{Title: i18n.T("vault.header.strength"), Width: 12},
		{Title: i18n.T("vault.header.updated"), Width: 10},
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
		s = db.DefaultEntrySearcher()
	}

	m := vaultModel{table: t, searcher: s}
	m.reload()
	return m
}

// reload fetches all entries and rebuilds the table, keeping the current
// filter applied.
func (m *vaultModel) reload() {
	var entries []model.VaultEntry
	var err error
	if m.searcher != nil {
		entries, err = m.searcher.SearchEntries("")
	} else {
		entries, err = db.GetAllEntries()
	}
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.entries = entries
	m.rebuildTableRows()
}

// rebuildTableRows recomputes the visible rows from the filter and refreshes
// the table.
func (m *vaultModel) rebuildTableRows() {
	var searcherFn core.EntrySearcherFunc
	if m.searcher != nil {
		searcherFn = m.searcher.SearchEntries
	}
	m.displayedEntries = core.FilterEntries(m.entries, m.filter, searcherFn)

	rows := make([]table.Row, 0, len(m.displayedEntries))
	for _, e := range m.displayedEntries {
		label := strength.Analyze(e.Password).Label
		strengthCell := strengthStyle(label).Render(LocalizedStrengthLabel(label))
		rows = append(rows, table.Row{
			e.Title,
			e.Username,
			e.Category,
			strengthCell,
			e.UpdatedAt.Format("2006-01-02"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectedEntry returns the entry under the table cursor, or nil when the
// table is empty.
func (m *vaultModel) selectedEntry() *model.VaultEntry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.displayedEntries) {
		return nil
	}
	return &m.displayedEntries[idx]
}

// openAddForm switches to the entry form with the password field pre-filled,
// used when saving a freshly generated password.
func (m *vaultModel) openAddForm(password string) tea.Cmd {
	m.form = newVaultFormModel(nil)
	if password != "" {
		m.form.inputs[vaultFieldPassword].SetValue(password)
	}
	m.state = vaultFormView
	return m.form.Init()
}

// deleteEntry removes an entry through the injected manager, falling back to
// package db helpers.
func deleteEntry(id int) error {
	if mgr := db.DefaultEntryManager(); mgr != nil {
		return mgr.DeleteEntry(id)
	}
	return db.DeleteEntry(id)
}

func (m *vaultModel) Init() tea.Cmd { return nil }

func (m *vaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 8)
		m.table.SetWidth(msg.Width - 4)
		return m, nil

	case vaultEntrySavedMsg:
		m.state = vaultListView
		m.status = i18n.T("vault.status.saved")
		m.reload()
		// Put the cursor back on the entry we just saved.
		for i, e := range m.displayedEntries {
			if e.ID == msg.id {
				m.table.SetCursor(i)
				break
			}
		}
		return m, nil

	case backToListMsg:
		m.state = vaultListView
		return m, nil
	}

	// The form owns all input while it is open.
	if m.state == vaultFormView {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.isConfirmingDelete {
			return m.updateConfirmDelete(keyMsg)
		}
		if m.isFiltering {
			return m.updateFilter(keyMsg)
		}

		switch keyMsg.String() {
		case "esc":
			// A first esc clears an applied filter, a second one leaves.
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
			m.status = ""
			m.rebuildTableRows()
			return m, nil
		case "a":
			m.form = newVaultFormModel(nil)
			m.state = vaultFormView
			return m, m.form.Init()
		case "e":
			if e := m.selectedEntry(); e != nil {
				m.form = newVaultFormModel(e)
				m.state = vaultFormView
				return m, m.form.Init()
			}
			return m, nil
		case "d", "delete":
			if e := m.selectedEntry(); e != nil {
				m.isConfirmingDelete = true
				m.entryToDelete = e
				m.confirmCursor = 0
			}
			return m, nil
		case "c":
			if e := m.selectedEntry(); e != nil {
				if err := clipboard.WriteAll(e.Password); err != nil {
					m.status = i18n.T("vault.status.copy_failed", err)
				} else {
					m.status = i18n.T("vault.status.copied")
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateConfirmDelete handles keys while the delete dialog is open.
func (m *vaultModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.isConfirmingDelete = false
		m.entryToDelete = nil
		m.status = i18n.T("vault.status.delete_cancelled")
	case "left", "right", "h", "l", "tab":
		m.confirmCursor = (m.confirmCursor + 1) % 2
	case "enter":
		if m.confirmCursor == 1 && m.entryToDelete != nil {
			if err := deleteEntry(m.entryToDelete.ID); err != nil {
				m.err = err
			} else {
				m.status = i18n.T("vault.status.delete_success")
				m.reload()
			}
		} else {
			m.status = i18n.T("vault.status.delete_cancelled")
		}
		m.isConfirmingDelete = false
		m.entryToDelete = nil
	}
	return m, nil
}

// updateFilter handles keys while the filter prompt is active.
func (m *vaultModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.isFiltering = false
		m.filter = ""
		m.rebuildTableRows()
	case "enter":
		// Keep the filter applied, leave input mode.
		m.isFiltering = false
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

func (m *vaultModel) View() string {
	if m.state == vaultFormView {
		return m.form.View()
	}
	if m.isConfirmingDelete && m.entryToDelete != nil {
		return m.viewConfirmDelete()
	}
	if m.err != nil {
		return errorStyle.Render(i18n.T("vault.error", m.err))
	}

	title := mainTitleStyle.Render("🗄  " + i18n.T("vault.title"))

	var body string
	if len(m.displayedEntries) == 0 {
		if m.filter != "" {
			body = helpStyle.Render(i18n.T("vault.empty_filtered"))
		} else {
			body = helpStyle.Render(i18n.T("vault.empty"))
		}
	} else {
		body = m.table.View()
	}

	parts := []string{title, body}
	if m.status != "" {
		parts = append(parts, statusMessageStyle.Render(m.status))
	}
	parts = append(parts, m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// viewConfirmDelete renders the modal delete confirmation dialog.
func (m *vaultModel) viewConfirmDelete() string {
	question := titleStyle.Render(i18n.T("vault.delete_confirm.question", m.entryToDelete.Title))

	noButton := buttonStyle.Render(i18n.T("vault.delete_confirm.no"))
	yesButton := buttonStyle.Render(i18n.T("vault.delete_confirm.yes"))
	if m.confirmCursor == 0 {
		noButton = activeButtonStyle.Render(i18n.T("vault.delete_confirm.no"))
	} else {
		yesButton = activeButtonStyle.Render(i18n.T("vault.delete_confirm.yes"))
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton)

	ui := lipgloss.JoinVertical(lipgloss.Center, question, buttons)
	dialog := dialogBoxStyle.Render(ui)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
	}
	return dialog
}

// footerView renders the key hints and the filter status on one bar.
func (m *vaultModel) footerView() string {
	filterStatus := getFilterStatusLine(m.isFiltering, m.filter, FilterI18nKeys{
		Filtering:    "vault.filtering",
		FilterActive: "vault.filter_active",
		FilterHint:   "vault.filter_hint",
	})

	width := m.width
	if width == 0 {
		width = 100
	}
	return footerBarStyle.Render(AlignFooter(i18n.T("vault.footer"), filterStatus, width-2))
}
