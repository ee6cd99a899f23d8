// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVaultEntryString(t *testing.T) {
	e := VaultEntry{Title: "Email", Username: "alice", Password: "hunter2"}
	if got := e.String(); got != "Email (alice)" {
		t.Errorf("unexpected VaultEntry.String(): %q", got)
	}

	e.Username = ""
	if got := e.String(); got != "Email" {
		t.Errorf("unexpected VaultEntry.String() without username: %q", got)
	}
}

func TestVaultEntryStringOmitsPassword(t *testing.T) {
	e := VaultEntry{Title: "Email", Username: "alice", Password: "hunter2"}
	if strings.Contains(e.String(), "hunter2") {
		t.Errorf("VaultEntry.String() must not contain the password: %q", e.String())
	}
}

func TestBackupDataJSONShape(t *testing.T) {
	b := BackupData{
		SchemaVersion: 1,
		Entries:       []VaultEntry{{EntryID: "a1", Title: "Email"}},
		Profiles:      []Profile{{Name: "alice"}},
	}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, key := range []string{"schema_version", "entries", "profiles", "audit_log_entries", "entry_id"} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("expected %q in backup JSON, got %s", key, raw)
		}
	}
}
