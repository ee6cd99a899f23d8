// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/passkeep/passkeep/internal/model"
	"github.com/uptrace/bun"
)

// Store defines the interface for all database operations in Passkeep.
// This allows for multiple database backends to be implemented. The concrete
// stores are thin shells over the shared Bun helpers in bun_adapter.go and
// differ only where the SQL dialects genuinely diverge.
type Store interface {
	// Vault entry methods. Lookups by row id or entry id return ErrNotFound
	// when no row matches.
	GetAllEntries() ([]model.VaultEntry, error)
	GetEntry(id int) (*model.VaultEntry, error)
	GetEntryByEntryID(entryID string) (*model.VaultEntry, error)
	AddEntry(entry model.VaultEntry) (int, error)
	UpdateEntry(entry model.VaultEntry) error
	DeleteEntry(id int) error
	SearchEntries(query string) ([]model.VaultEntry, error)
	FilterEntriesByCategory(filter string) ([]model.VaultEntry, error)
	GetCategories() ([]string, error)

	// Profile methods. A missing profile is a state, not an error:
	// GetProfile returns (nil, nil) when no profile has been set.
	GetProfile() (*model.Profile, error)
	SetProfile(name, passphraseHash string) error
	DeleteProfile() error

	// Audit log methods
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
	LogAction(action string, details string) error

	// Backup and restore methods
	ExportDataForBackup() (*model.BackupData, error)
	ImportDataFromBackup(backup *model.BackupData) error
	IntegrateDataFromBackup(backup *model.BackupData) error

	// BunDB exposes the underlying Bun handle so low-level helpers and
	// adapters can run queries without widening this interface.
	BunDB() *bun.DB
}
