// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/passkeep/passkeep/internal/generator"
	"github.com/passkeep/passkeep/internal/i18n"
)

func TestGenerate_SettingsConfigFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("generator.length", 24)
	viper.Set("generator.symbols", false)
	viper.Set("generator.no_sequential", true)

	cfg := settingsConfig()
	if cfg.Length != 24 {
		t.Fatalf("expected configured length 24, got %d", cfg.Length)
	}
	if cfg.Symbols {
		t.Fatalf("expected symbols disabled")
	}
	if !cfg.NoSequential {
		t.Fatalf("expected no_sequential enabled")
	}
	// Unset keys keep their defaults.
	if !cfg.Uppercase || !cfg.Lowercase || !cfg.Numbers {
		t.Fatalf("expected remaining classes enabled by default: %+v", cfg)
	}

	// Out of range lengths clamp to the supported bounds.
	viper.Set("generator.length", 3)
	if got := settingsConfig().Length; got != generator.MinLength {
		t.Fatalf("expected clamp to %d, got %d", generator.MinLength, got)
	}
	viper.Set("generator.length", 4096)
	if got := settingsConfig().Length; got != generator.MaxLength {
		t.Fatalf("expected clamp to %d, got %d", generator.MaxLength, got)
	}
}

func TestGenerate_Update_TogglesAndLength(t *testing.T) {
	i18n.Init("en")
	viper.Reset()

	m := newGenerateModel()

	// Move to the symbols row and toggle it off.
	m.cursor = genRowSymbols
	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m1 := mi.(generateModel)
	if m1.cfg.Symbols {
		t.Fatalf("expected symbols toggled off")
	}
	if m1.password == "" {
		t.Fatalf("expected a regenerated password")
	}

	// Length stepper on the first row.
	m1.cursor = genRowLength
	mi, _ = m1.Update(tea.KeyMsg{Type: tea.KeyRight})
	m2 := mi.(generateModel)
	if m2.cfg.Length != 17 {
		t.Fatalf("expected length 17 after right, got %d", m2.cfg.Length)
	}
	if len(m2.password) != 17 {
		t.Fatalf("expected regenerated password of length 17, got %d", len(m2.password))
	}

	mi, _ = m2.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m3 := mi.(generateModel)
	if m3.cfg.Length != 16 {
		t.Fatalf("expected length 16 after left, got %d", m3.cfg.Length)
	}

	// The stepper refuses to leave the supported range.
	m3.cfg.Length = generator.MinLength
	mi, _ = m3.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m4 := mi.(generateModel)
	if m4.cfg.Length != generator.MinLength {
		t.Fatalf("expected length pinned at %d, got %d", generator.MinLength, m4.cfg.Length)
	}
}

func TestGenerate_Update_RegenerateAndSave(t *testing.T) {
	i18n.Init("en")
	viper.Reset()

	m := newGenerateModel()

	mi, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m1 := mi.(generateModel)
	if m1.password == "" || len(m1.password) != 16 {
		t.Fatalf("expected regenerated password, got %q", m1.password)
	}

	mi, cmd := m1.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m2 := mi.(generateModel)
	if cmd == nil {
		t.Fatalf("expected a command from 's'")
	}
	saveMsg, ok := cmd().(saveToVaultMsg)
	if !ok {
		t.Fatalf("expected saveToVaultMsg")
	}
	if saveMsg.password != m2.password {
		t.Fatalf("expected the current password in the save message")
	}

	_, cmd = m2.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected a command from esc")
	}
	if _, ok := cmd().(backToMenuMsg); !ok {
		t.Fatalf("expected backToMenuMsg from esc")
	}
}
