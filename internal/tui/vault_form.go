// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/generator"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
)

var focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

// vaultEntrySavedMsg reports a successful save from the entry form.
type vaultEntrySavedMsg struct {
	id    int
	isNew bool
}

// Input fields of the entry form, top to bottom.
const (
	vaultFieldTitle = iota
	vaultFieldUsername
	vaultFieldPassword
	vaultFieldURL
	vaultFieldNotes
	vaultFieldCategory
	vaultFieldCount
)

// vaultFormModel is the add/edit form for a vault entry. The focus index
// walks the inputs and ends on the save button.
type vaultFormModel struct {
	inputs     []textinput.Model
	focusIndex int
	// existing is the entry being edited, nil when adding.
	existing *model.VaultEntry
	err      error
}

// promptFor builds an aligned input label from a locale key.
func promptFor(key string) string {
	return fmt.Sprintf("%-14s ", i18n.T(key)+":")
}

// newVaultFormModel creates the entry form. A non-nil entry switches the form
// into edit mode with all fields pre-filled.
func newVaultFormModel(entry *model.VaultEntry) vaultFormModel {
	m := vaultFormModel{inputs: make([]textinput.Model, vaultFieldCount)}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 256
		t.Width = 40

		switch i {
		case vaultFieldTitle:
			t.Prompt = promptFor("vault_form.title")
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case vaultFieldUsername:
			t.Prompt = promptFor("vault_form.username")
		case vaultFieldPassword:
			t.Prompt = promptFor("vault_form.password")
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		case vaultFieldURL:
			t.Prompt = promptFor("vault_form.url")
		case vaultFieldNotes:
			t.Prompt = promptFor("vault_form.notes")
		case vaultFieldCategory:
			t.Prompt = promptFor("vault_form.category")
		}

		m.inputs[i] = t
	}

	if entry != nil {
		e := *entry
		m.existing = &e
		m.inputs[vaultFieldTitle].SetValue(entry.Title)
		m.inputs[vaultFieldUsername].SetValue(entry.Username)
		m.inputs[vaultFieldPassword].SetValue(entry.Password)
		m.inputs[vaultFieldURL].SetValue(entry.URL)
		m.inputs[vaultFieldNotes].SetValue(entry.Notes)
		m.inputs[vaultFieldCategory].SetValue(entry.Category)
	}

	return m
}

func (m vaultFormModel) Init() tea.Cmd { return textinput.Blink }

func (m vaultFormModel) Update(msg tea.Msg) (vaultFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return backToListMsg{} }

		case "ctrl+g":
			// Drop a freshly generated password into the password field.
			m.inputs[vaultFieldPassword].SetValue(generator.Generate(settingsConfig()))
			return m, nil

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Submit when enter is pressed on the save button.
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m.submit()
			}

			// Cycle focus over the inputs and the save button.
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = lipgloss.NewStyle()
				m.inputs[i].TextStyle = lipgloss.NewStyle()
			}
			return m, tea.Batch(cmds...)
		}
	}

	return m, m.updateInputs(msg)
}

// updateInputs forwards the message to every input; only the focused one
// consumes key presses.
func (m *vaultFormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// addEntry and updateEntry go through the injected manager, falling back to
// package db helpers.
func addEntry(entry model.VaultEntry) (int, error) {
	if mgr := db.DefaultEntryManager(); mgr != nil {
		return mgr.AddEntry(entry)
	}
	return db.AddEntry(entry)
}

func updateEntry(entry model.VaultEntry) error {
	if mgr := db.DefaultEntryManager(); mgr != nil {
		return mgr.UpdateEntry(entry)
	}
	return db.UpdateEntry(entry)
}

// submit validates the form and persists the entry.
func (m vaultFormModel) submit() (vaultFormModel, tea.Cmd) {
	title := strings.TrimSpace(m.inputs[vaultFieldTitle].Value())
	if title == "" {
		m.err = errors.New(i18n.T("vault_form.error_title_required"))
		return m, nil
	}

	entry := model.VaultEntry{
		Title:    title,
		Username: strings.TrimSpace(m.inputs[vaultFieldUsername].Value()),
		Password: m.inputs[vaultFieldPassword].Value(),
		URL:      strings.TrimSpace(m.inputs[vaultFieldURL].Value()),
		Notes:    m.inputs[vaultFieldNotes].Value(),
		Category: strings.TrimSpace(m.inputs[vaultFieldCategory].Value()),
	}

	if m.existing != nil {
		// Row identity and creation time survive the edit.
		entry.ID = m.existing.ID
		entry.EntryID = m.existing.EntryID
		entry.CreatedAt = m.existing.CreatedAt
		if err := updateEntry(entry); err != nil {
			m.err = err
			return m, nil
		}
		id := entry.ID
		return m, func() tea.Msg { return vaultEntrySavedMsg{id: id} }
	}

	id, err := addEntry(entry)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, func() tea.Msg { return vaultEntrySavedMsg{id: id, isNew: true} }
}

func (m vaultFormModel) View() string {
	titleKey := "vault_form.title_add"
	if m.existing != nil {
		titleKey = "vault_form.title_edit"
	}
	title := mainTitleStyle.Render("✏  " + i18n.T(titleKey))

	var rows []string
	for i := range m.inputs {
		rows = append(rows, m.inputs[i].View())
	}

	button := fmt.Sprintf("[ %s ]", i18n.T("vault_form.submit"))
	if m.focusIndex == len(m.inputs) {
		button = focusedStyle.Render(button)
	}
	rows = append(rows, "", button)

	if m.err != nil {
		rows = append(rows, "", errorStyle.Render(m.err.Error()))
	}

	pane := paneStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	help := helpStyle.Render(i18n.T("vault_form.help"))

	return lipgloss.JoinVertical(lipgloss.Left, title, pane, help)
}
