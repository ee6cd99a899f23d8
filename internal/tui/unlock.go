// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
	"github.com/passkeep/passkeep/internal/security"
	"github.com/passkeep/passkeep/internal/state"
)

// vaultUnlockedMsg reports a successful passphrase check to the router.
type vaultUnlockedMsg struct{}

// unlockModel gates the vault behind the profile passphrase. A correct
// passphrase lands in the session cache so the gate only shows once.
type unlockModel struct {
	input    textinput.Model
	profile  model.Profile
	attempts int
	failed   bool
}

func newUnlockModel(profile model.Profile) unlockModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.PromptStyle = focusedStyle
	ti.Cursor.Style = focusedStyle
	return unlockModel{input: ti, profile: profile}
}

func (m unlockModel) Init() tea.Cmd { return textinput.Blink }

func (m unlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }

		case "enter":
			pass := security.FromString(m.input.Value())
			if security.CheckPassphrase(m.profile.PassphraseHash, pass) {
				state.PassphraseCache.Set(pass.Bytes())
				pass.Zero()
				m.input.SetValue("")
				return m, func() tea.Msg { return vaultUnlockedMsg{} }
			}

			// Failed attempts land in the audit log, without the passphrase.
			m.attempts++
			m.failed = true
			m.input.SetValue("")
			logAction("UNLOCK_FAILED", fmt.Sprintf("profile=%s attempts=%d", m.profile.Name, m.attempts))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m unlockModel) View() string {
	title := mainTitleStyle.Render("🔒 " + i18n.T("unlock.title"))

	rows := []string{
		i18n.T("unlock.prompt", m.profile.Name),
		"",
		m.input.View(),
	}
	if m.failed {
		rows = append(rows, "", errorStyle.Render(i18n.T("unlock.failed", m.attempts)))
	}
	pane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	footer := helpStyle.Render(i18n.T("unlock.help"))

	return lipgloss.JoinVertical(lipgloss.Left, title, pane, footer)
}
