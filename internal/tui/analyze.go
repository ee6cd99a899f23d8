// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/strength"
)

// analyzeModel holds the state for the strength analyzer. The readout is
// recomputed on every keystroke.
type analyzeModel struct {
	input  textinput.Model
	result strength.Result
	crack  strength.CrackTime
}

func newAnalyzeModel() analyzeModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 48
	ti.PromptStyle = focusedStyle
	ti.Cursor.Style = focusedStyle
	return analyzeModel{input: ti}
}

func (m analyzeModel) Init() tea.Cmd { return textinput.Blink }

func (m analyzeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Only esc leaves the view; every printable key belongs to the input.
		if keyMsg.String() == "esc" {
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.result = strength.Analyze(m.input.Value())
	m.crack = strength.EstimateCrackTime(m.result.Bits)
	return m, cmd
}

func (m analyzeModel) View() string {
	title := mainTitleStyle.Render("🔎 " + i18n.T("analyze.title"))

	rows := []string{m.input.View(), ""}
	if m.input.Value() == "" {
		rows = append(rows, helpStyle.Render(i18n.T("analyze.prompt")))
	} else {
		styledLabel := strengthStyle(m.result.Label).Render(LocalizedStrengthLabel(m.result.Label))
		rows = append(rows,
			i18n.T("analyze.label", styledLabel),
			i18n.T("analyze.score", m.result.Score),
			i18n.T("analyze.bits", m.result.Bits),
			i18n.T("analyze.crack_time", LocalizedCrackTime(m.crack)),
		)
	}
	pane := paneStyle.Width(56).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	footer := helpStyle.Render(i18n.T("analyze.footer"))

	return lipgloss.JoinVertical(lipgloss.Left, title, pane, footer)
}
