// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data models used across Passkeep. These are
// simple structs that represent database entities and are intentionally
// minimal to keep serialization and DB adapters straightforward.
package model

import (
	"fmt"
	"time"
)

// VaultEntry is a stored credential record. This is the core entity the
// vault manages.
type VaultEntry struct {
	ID        int       `json:"id"`
	EntryID   string    `json:"entry_id"` // stable UUID, survives export/import
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String returns the title/username representation. The password is
// deliberately omitted so entries are safe to log and display.
func (e VaultEntry) String() string {
	if e.Username == "" {
		return e.Title
	}
	return fmt.Sprintf("%s (%s)", e.Title, e.Username)
}

// Profile is a named local profile guarding the vault with a passphrase.
type Profile struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	PassphraseHash string    `json:"passphrase_hash"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuditLogEntry records a single action against the vault.
type AuditLogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}
