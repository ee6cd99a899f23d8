// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/passkeep/passkeep/internal/generator"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/strength"
)

// saveToVaultMsg asks the router to store a generated password in the vault,
// passing through the unlock gate first when one is configured.
type saveToVaultMsg struct {
	password string
}

// Settings rows of the generator view, top to bottom.
const (
	genRowLength = iota
	genRowUppercase
	genRowLowercase
	genRowNumbers
	genRowSymbols
	genRowAvoidAmbiguous
	genRowRequireAll
	genRowNoRepeat
	genRowNoSequential
	genRowCount
)

// generateModel holds the state for the interactive password generator. Every
// settings change regenerates the password so the preview is always live.
type generateModel struct {
	cfg      generator.Config
	cursor   int
	password string
	result   strength.Result
	crack    strength.CrackTime
	status   string
	width    int
}

// settingsConfig builds a generator configuration from the persisted
// generator.* settings, falling back to defaults for unset keys.
func settingsConfig() generator.Config {
	cfg := generator.DefaultConfig()
	if viper.IsSet("generator.length") {
		cfg.Length = viper.GetInt("generator.length")
	}
	if viper.IsSet("generator.uppercase") {
		cfg.Uppercase = viper.GetBool("generator.uppercase")
	}
	if viper.IsSet("generator.lowercase") {
		cfg.Lowercase = viper.GetBool("generator.lowercase")
	}
	if viper.IsSet("generator.numbers") {
		cfg.Numbers = viper.GetBool("generator.numbers")
	}
	if viper.IsSet("generator.symbols") {
		cfg.Symbols = viper.GetBool("generator.symbols")
	}
	if viper.IsSet("generator.avoid_ambiguous") {
		cfg.AvoidAmbiguous = viper.GetBool("generator.avoid_ambiguous")
	}
	if viper.IsSet("generator.require_all_types") {
		cfg.RequireAllTypes = viper.GetBool("generator.require_all_types")
	}
	if viper.IsSet("generator.no_consecutive_repeat") {
		cfg.NoConsecutiveRepeat = viper.GetBool("generator.no_consecutive_repeat")
	}
	if viper.IsSet("generator.no_sequential") {
		cfg.NoSequential = viper.GetBool("generator.no_sequential")
	}
	if cfg.Length < generator.MinLength {
		cfg.Length = generator.MinLength
	}
	if cfg.Length > generator.MaxLength {
		cfg.Length = generator.MaxLength
	}
	return cfg
}

// newGenerateModel creates the generator view with a freshly generated
// password based on the configured settings.
func newGenerateModel() generateModel {
	m := generateModel{cfg: settingsConfig()}
	m.regenerate()
	return m
}

// regenerate produces a new password from the current settings and updates
// the strength readout.
func (m *generateModel) regenerate() {
	m.password = generator.Generate(m.cfg)
	m.result = strength.Analyze(m.password)
	m.crack = strength.EstimateCrackTime(m.result.Bits)
	m.status = ""
}

// toggleRow flips the boolean setting behind the given row. The length row
// has no toggle.
func (m *generateModel) toggleRow(row int) {
	switch row {
	case genRowUppercase:
		m.cfg.Uppercase = !m.cfg.Uppercase
	case genRowLowercase:
		m.cfg.Lowercase = !m.cfg.Lowercase
	case genRowNumbers:
		m.cfg.Numbers = !m.cfg.Numbers
	case genRowSymbols:
		m.cfg.Symbols = !m.cfg.Symbols
	case genRowAvoidAmbiguous:
		m.cfg.AvoidAmbiguous = !m.cfg.AvoidAmbiguous
	case genRowRequireAll:
		m.cfg.RequireAllTypes = !m.cfg.RequireAllTypes
	case genRowNoRepeat:
		m.cfg.NoConsecutiveRepeat = !m.cfg.NoConsecutiveRepeat
	case genRowNoSequential:
		m.cfg.NoSequential = !m.cfg.NoSequential
	}
}

func (m generateModel) Init() tea.Cmd { return nil }

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < genRowCount-1 {
				m.cursor++
			}
		case "left", "h":
			if m.cursor == genRowLength && m.cfg.Length > generator.MinLength {
				m.cfg.Length--
				m.regenerate()
			}
		case "right", "l":
			if m.cursor == genRowLength && m.cfg.Length < generator.MaxLength {
				m.cfg.Length++
				m.regenerate()
			}
		case " ", "enter":
			if m.cursor != genRowLength {
				m.toggleRow(m.cursor)
				m.regenerate()
			}
		case "r":
			m.regenerate()
		case "c":
			if err := clipboard.WriteAll(m.password); err != nil {
				m.status = i18n.T("generate.status.copy_failed", err)
			} else {
				m.status = i18n.T("generate.status.copied")
			}
		case "s":
			password := m.password
			return m, func() tea.Msg { return saveToVaultMsg{password: password} }
		}
	}
	return m, nil
}

// settingRow renders one line of the settings pane with a toggle box, or the
// length stepper for the first row.
func (m generateModel) settingRow(row int, label string) string {
	var line string
	if row == genRowLength {
		line = fmt.Sprintf("%s: %d", label, m.cfg.Length)
	} else {
		box := "☐"
		if m.rowChecked(row) {
			box = "☑"
		}
		line = box + " " + label
	}
	if m.cursor == row {
		return formSelectedItemStyle.Render("▸ " + line)
	}
	return formItemStyle.Render("  " + line)
}

func (m generateModel) rowChecked(row int) bool {
	switch row {
	case genRowUppercase:
		return m.cfg.Uppercase
	case genRowLowercase:
		return m.cfg.Lowercase
	case genRowNumbers:
		return m.cfg.Numbers
	case genRowSymbols:
		return m.cfg.Symbols
	case genRowAvoidAmbiguous:
		return m.cfg.AvoidAmbiguous
	case genRowRequireAll:
		return m.cfg.RequireAllTypes
	case genRowNoRepeat:
		return m.cfg.NoConsecutiveRepeat
	case genRowNoSequential:
		return m.cfg.NoSequential
	}
	return false
}

func (m generateModel) View() string {
	title := mainTitleStyle.Render("🔐 " + i18n.T("generate.title"))

	paneTitleStyle := lipgloss.NewStyle().Bold(true)

	settingsRows := []string{
		m.settingRow(genRowLength, i18n.T("generate.length")),
		m.settingRow(genRowUppercase, i18n.T("generate.uppercase")),
		m.settingRow(genRowLowercase, i18n.T("generate.lowercase")),
		m.settingRow(genRowNumbers, i18n.T("generate.numbers")),
		m.settingRow(genRowSymbols, i18n.T("generate.symbols")),
		m.settingRow(genRowAvoidAmbiguous, i18n.T("generate.avoid_ambiguous")),
		m.settingRow(genRowRequireAll, i18n.T("generate.require_all")),
		m.settingRow(genRowNoRepeat, i18n.T("generate.no_repeat")),
		m.settingRow(genRowNoSequential, i18n.T("generate.no_sequential")),
	}
	settingsPane := paneStyle.Width(56).Render(lipgloss.JoinVertical(lipgloss.Left, settingsRows...))

	styledLabel := strengthStyle(m.result.Label).Render(LocalizedStrengthLabel(m.result.Label))
	resultRows := []string{
		paneTitleStyle.Render(i18n.T("generate.result_title")),
		"",
		lipgloss.NewStyle().Bold(true).Render(m.password),
		"",
		i18n.T("generate.strength", styledLabel, m.result.Score),
		i18n.T("generate.entropy", m.result.Bits),
		i18n.T("generate.crack_time", LocalizedCrackTime(m.crack)),
	}
	resultPane := paneStyle.Width(56).Render(lipgloss.JoinVertical(lipgloss.Left, resultRows...))

	parts := []string{title, settingsPane, resultPane}
	if m.status != "" {
		parts = append(parts, statusMessageStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(i18n.T("generate.footer")))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
