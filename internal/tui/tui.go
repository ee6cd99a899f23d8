// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Passkeep.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to all other sub-views.
package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/passkeep/passkeep/internal/core"
	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/logging"
	"github.com/passkeep/passkeep/internal/state"
	"github.com/passkeep/passkeep/internal/strength"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the main dashboard and navigation menu.
	menuView viewState = iota
	generateView
	analyzeView
	vaultView
	auditLogView
	unlockView
	languageView
)

// dashboardDataMsg is a message containing the data for the main menu dashboard.
type dashboardDataMsg struct {
	data dashboardData
}

// languageChangedMsg is a message to signal that the language has changed and
// the UI should be re-initialized.
type languageChangedMsg struct{}

// dashboardData holds the summary information for the main menu view.
type dashboardData struct {
	entryCount    int
	categoryCount int
	profileName   string
	hasProfile    bool
	unlocked      bool
	postureLine   string
	recentLogs    []recentLogLine
	err           error
}

// recentLogLine is one pre-split activity feed row.
type recentLogLine struct {
	timestamp string
	action    string
	details   string
}

// ConfigSaver persists configuration changed from inside the TUI, such as the
// language selection. The CLI injects the real implementation at startup; with
// a nil saver the selection only lasts for the session.
type ConfigSaver interface {
	Save() error
}

var configSaver ConfigSaver

// SetConfigSaver injects the config persistence hook used by the TUI.
func SetConfigSaver(s ConfigSaver) {
	configSaver = s
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the currently active
// sub-model.
type mainModel struct {
	state     viewState
	menu      menuModel
	generator generateModel
	analyzer  analyzeModel
	vault     *vaultModel
	auditLog  *auditLogModel
	unlock    unlockModel
	language  languageModel
	dashboard dashboardData
	width     int
	height    int
	err       error
	// A generated password waiting to be stored once the vault is open.
	pendingPassword string
	// Injected searchers to propagate to sub-models for server-side search.
	entrySearcher db.EntrySearcher
	auditSearcher db.AuditSearcher
}

// menuModel holds the state for the main menu.
type menuModel struct {
	choices []string // The menu items to show.
	cursor  int      // Which menu item our cursor is pointing at.
}

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

// initialModelWithSearchers creates the starting state of the TUI while
// allowing injection of searchers used by sub-models. Pass nil to use
// package defaults.
func initialModelWithSearchers(e db.EntrySearcher, au db.AuditSearcher) mainModel {
	return mainModel{
		state: menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.generate"),
				i18n.T("menu.analyze"),
				i18n.T("menu.vault"),
				i18n.T("menu.view_audit_log"),
				i18n.T("menu.language"),
			},
		},
		entrySearcher: e,
		auditSearcher: au,
	}
}

// initialModel creates the starting state of the TUI, beginning at the main menu.
func initialModel() mainModel {
	return initialModelWithSearchers(db.DefaultEntrySearcher(), db.DefaultAuditSearcher())
}

// Init is the first function that will be called by the Bubble Tea runtime.
// It kicks off the initial command to load data for the dashboard.
func (m mainModel) Init() tea.Cmd {
	return refreshDashboardCmd()
}

// enterVault routes through the unlock gate when a profile guards the vault,
// otherwise straight into the browser.
func (m *mainModel) enterVault() tea.Cmd {
	profile, err := db.GetProfile()
	if err != nil {
		m.err = err
		return nil
	}
	if profile != nil && !state.PassphraseCache.IsSet() {
		m.state = unlockView
		m.unlock = newUnlockModel(*profile)
		return m.unlock.Init()
	}
	return m.openVault()
}

// openVault constructs the vault browser, seeding the add form when a
// generated password is waiting to be saved.
func (m *mainModel) openVault() tea.Cmd {
	newModel := newVaultModelWithSearcher(m.entrySearcher)
	m.vault = &newModel
	m.state = vaultView

	// Manually update the new sub-model with the current window size so the
	// table is laid out correctly.
	var cmds []tea.Cmd
	updatedModel, cmd := m.vault.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.vault = updatedModel.(*vaultModel)
	cmds = append(cmds, cmd)

	if m.pendingPassword != "" {
		cmds = append(cmds, m.vault.openAddForm(m.pendingPassword))
		m.pendingPassword = ""
	}
	return tea.Batch(cmds...)
}

// Update is the main message loop. It handles all events (like key presses and
// window size changes) and delegates them to the active sub-model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings that work everywhere.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashboardDataMsg:
		m.dashboard = msg.data
		if msg.data.err != nil {
			m.err = msg.data.err
		}
		return m, nil

	case vaultUnlockedMsg:
		return m, m.openVault()

	case saveToVaultMsg:
		// Route the generated password through the unlock gate into the
		// vault's add form.
		m.pendingPassword = msg.password
		return m, m.enterVault()

	case languageChangedMsg:
		// The language has changed. Re-initialize the entire model to apply
		// new translations everywhere, preserving injected searchers and the
		// current window dimensions.
		newModel := initialModelWithSearchers(m.entrySearcher, m.auditSearcher)
		newModel.width = m.width
		newModel.height = m.height
		return newModel, newModel.Init()
	}

	// Delegate updates to the currently active view.
	switch m.state {
	case generateView:
		// If we received a "back" message, switch the state.
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var updated tea.Model
		updated, cmd = m.generator.Update(msg)
		m.generator = updated.(generateModel)

	case analyzeView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var updated tea.Model
		updated, cmd = m.analyzer.Update(msg)
		m.analyzer = updated.(analyzeModel)

	case vaultView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var updated tea.Model
		updated, cmd = m.vault.Update(msg)
		m.vault = updated.(*vaultModel)

	case auditLogView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var updated tea.Model
		updated, cmd = m.auditLog.Update(msg)
		m.auditLog = updated.(*auditLogModel)

	case unlockView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			m.pendingPassword = ""
			return m, refreshDashboardCmd()
		}
		var updated tea.Model
		updated, cmd = m.unlock.Update(msg)
		m.unlock = updated.(unlockModel)

	case languageView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.state = menuView
				return m, refreshDashboardCmd()
			case "up", "k":
				if m.language.cursor > 0 {
					m.language.cursor--
				}
			case "down", "j":
				if m.language.cursor < len(m.language.orderedKeys)-1 {
					m.language.cursor++
				}
			case "enter":
				langCode := m.language.orderedKeys[m.language.cursor]
				i18n.SetLang(langCode)
				viper.Set("language", langCode)
				if configSaver != nil {
					if err := configSaver.Save(); err != nil {
						m.err = fmt.Errorf("failed to save config: %w", err)
					}
				}

				// Signal that the language has changed so the entire UI can
				// be re-initialized.
				return m, func() tea.Msg { return languageChangedMsg{} }
			}
		}

	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.menu.cursor > 0 {
					m.menu.cursor--
				}
			case "down", "j":
				if m.menu.cursor < len(m.menu.choices)-1 {
					m.menu.cursor++
				}
			case "enter":
				switch m.menu.cursor {
				case 0: // Generate Password
					m.state = generateView
					m.generator = newGenerateModel()
					return m, nil
				case 1: // Analyze Password
					m.state = analyzeView
					m.analyzer = newAnalyzeModel()
					return m, m.analyzer.Init()
				case 2: // Browse Vault
					return m, m.enterVault()
				case 3: // View Audit Log
					m.state = auditLogView
					m.auditLog = newAuditLogModelWithSearcher(m.auditSearcher)
					// Manually update the new sub-model with the current
					// window size so the table is laid out correctly.
					var updated tea.Model
					updated, cmd = m.auditLog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.auditLog = updated.(*auditLogModel)
					return m, cmd
				case 4: // Language
					m.state = languageView
					m.language = newLanguageModel()
					return m, nil
				}
			case "L":
				// "L" opens the language menu from anywhere in the menu.
				m.state = languageView
				m.language = newLanguageModel()
				return m, nil
			}
		}
	}

	return m, cmd
}

// View renders the TUI. It's called after every Update and delegates rendering
// to the currently active sub-model.
func (m mainModel) View() string {
	if m.err != nil {
		// A simple error view
		errView := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
		return errView.Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	// Delegate rendering to the currently active view.
	switch m.state {
	case generateView:
		return m.generator.View()
	case analyzeView:
		return m.analyzer.View()
	case vaultView:
		return m.vault.View()
	case auditLogView:
		return m.auditLog.View()
	case unlockView:
		return m.unlock.View()
	case languageView:
		return m.language.View()
	default: // menuView
		return m.menu.View(m.dashboard, m.width, m.height)
	}
}

// View renders the main menu and dashboard.
func (m menuModel) View(data dashboardData, width, height int) string {
	// Title (i18n)
	title := mainTitleStyle.Render("🔑 " + i18n.T("dashboard.title"))
	subTitle := helpStyle.Render(i18n.T("dashboard.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	paneTitleStyle := lipgloss.NewStyle().Bold(true)

	// Menu List (Left Pane)
	var menuItems []string
	menuItems = append(menuItems, paneTitleStyle.Render(i18n.T("menu.navigation")), "")
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	// Dashboard (Right Pane)
	var dashboardItems []string
	dashboardItems = append(dashboardItems, paneTitleStyle.Render(i18n.T("dashboard.vault_status")), "")
	dashboardItems = append(dashboardItems, i18n.T("dashboard.entries", data.entryCount))
	dashboardItems = append(dashboardItems, i18n.T("dashboard.categories", data.categoryCount))
	if data.hasProfile {
		dashboardItems = append(dashboardItems, i18n.T("dashboard.profile_active", data.profileName))
		if data.unlocked {
			dashboardItems = append(dashboardItems, successStyle.Render(i18n.T("dashboard.unlocked")))
		} else {
			dashboardItems = append(dashboardItems, specialStyle.Render(i18n.T("dashboard.locked")))
		}
	} else {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.profile_none")))
	}

	// Security Posture
	dashboardItems = append(dashboardItems, "", "", paneTitleStyle.Render(i18n.T("dashboard.security_posture")), "")
	if data.postureLine == "" {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.posture_empty")))
	} else {
		dashboardItems = append(dashboardItems, data.postureLine)
	}

	// Recent Activity
	dashboardItems = append(dashboardItems, "", "", paneTitleStyle.Render(i18n.T("dashboard.recent_activity")), "")

	// --- Layout ---
	headerHeight := lipgloss.Height(header)
	paneHeight := height - headerHeight - 3 // footer line plus the newlines around mainArea

	menuWidth := 38
	dashboardWidth := width - 4 - menuWidth - 2

	if len(data.recentLogs) == 0 {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.no_recent_activity")))
	} else {
		for _, log := range data.recentLogs {
			// Calculate available space inside the pane for the log line.
			innerDashboardWidth := dashboardWidth - 4 - 2
			availableWidth := innerDashboardWidth - len(log.timestamp) - 1

			styledAction := auditActionStyle(log.action).Render(log.action)

			// Gracefully truncate the details if they are too long.
			detailsWidth := availableWidth - len(log.action) - 1
			if detailsWidth < 10 {
				detailsWidth = 10
			}
			details := log.details
			if len(details) > detailsWidth {
				details = details[:detailsWidth-3] + "..."
			}

			logLine := lipgloss.JoinHorizontal(lipgloss.Left,
				helpStyle.Render(log.timestamp), " ", styledAction, " ", helpStyle.Render(details))
			dashboardItems = append(dashboardItems, logLine)
		}
	}
	dashboardContent := lipgloss.JoinVertical(lipgloss.Left, dashboardItems...)

	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashboardContent)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	footer := footerBarStyle.Render(AlignFooter(i18n.T("dashboard.footer"), "", width))

	return lipgloss.JoinVertical(lipgloss.Top, header, mainArea, footer)
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel() languageModel {
	return languageModel{
		choices:     i18n.GetAvailableLocales(),
		orderedKeys: i18n.SortedLocaleCodes(),
		cursor:      0,
	}
}

// View for languageModel.
func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("menu.language"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("language.select")), "")

	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+displayName))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+displayName))
		}
	}

	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))
	helpLine := footerBarStyle.Render(AlignFooter(i18n.T("language.help"), "", 60))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}

// Run is the main entrypoint for the TUI. It initializes and runs the Bubble
// Tea program.
func Run() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		os.Exit(1)
	}
}

// refreshDashboardCmd is a tea.Cmd that fetches summary data for the main menu.
func refreshDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		coreData, err := core.BuildDashboardData(dashboardEntryReader{}, dashboardProfileReader{}, dashboardAuditReader{})
		if err != nil {
			return dashboardDataMsg{data: dashboardData{err: err}}
		}

		// Map core.DashboardData into the tui dashboardData and apply
		// view-side styling.
		data := dashboardData{
			entryCount:    coreData.EntryCount,
			categoryCount: coreData.CategoryCount,
			profileName:   coreData.ProfileName,
			hasProfile:    coreData.HasProfile,
			unlocked:      !coreData.HasProfile || state.PassphraseCache.IsSet(),
		}
		for _, log := range coreData.RecentLogs {
			data.recentLogs = append(data.recentLogs, recentLogLine{
				timestamp: log.Timestamp.Format("01-02 15:04"),
				action:    log.Action,
				details:   log.Details,
			})
		}
		data.postureLine = renderPostureLine(coreData.StrengthCounts)

		return dashboardDataMsg{data: data}
	}
}

// renderPostureLine formats the strength breakdown with per-tier colors,
// weakest first. Empty tiers are omitted.
func renderPostureLine(counts map[strength.Label]int) string {
	tiers := []struct {
		label strength.Label
		key   string
	}{
		{strength.Weak, "dashboard.posture_weak"},
		{strength.Fair, "dashboard.posture_fair"},
		{strength.Good, "dashboard.posture_good"},
		{strength.Strong, "dashboard.posture_strong"},
		{strength.Excellent, "dashboard.posture_excellent"},
	}
	var parts []string
	for _, tier := range tiers {
		if n := counts[tier.label]; n > 0 {
			parts = append(parts, strengthStyle(tier.label).Render(i18n.T(tier.key, n)))
		}
	}
	return strings.Join(parts, ", ")
}
