// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"fmt"

	"github.com/passkeep/passkeep/internal/model"
	"github.com/uptrace/bun"
)

// bunStore holds the behavior shared by all dialect stores: delegation to the
// Bun helpers plus audit logging around mutations. The dialect stores embed it
// and add only what their SQL dialect genuinely requires (merge syntax,
// sequence handling). bunStore alone does not satisfy Store; the embedding
// store must provide IntegrateDataFromBackup.
type bunStore struct {
	bun *bun.DB
}

// BunDB returns the underlying Bun handle.
func (s *bunStore) BunDB() *bun.DB { return s.bun }

// --- Vault entry methods ---

func (s *bunStore) GetAllEntries() ([]model.VaultEntry, error) {
	return GetAllEntriesBun(s.bun)
}

func (s *bunStore) GetEntry(id int) (*model.VaultEntry, error) {
	return GetEntryByIDBun(s.bun, id)
}

func (s *bunStore) GetEntryByEntryID(entryID string) (*model.VaultEntry, error) {
	return GetEntryByEntryIDBun(s.bun, entryID)
}

func (s *bunStore) AddEntry(entry model.VaultEntry) (int, error) {
	id, err := AddEntryBun(s.bun, entry)
	if err == nil {
		_ = s.LogAction("ADD_ENTRY", entry.String())
	}
	return id, err
}

func (s *bunStore) UpdateEntry(entry model.VaultEntry) error {
	err := UpdateEntryBun(s.bun, entry)
	if err == nil {
		_ = s.LogAction("UPDATE_ENTRY", entry.String())
	}
	return err
}

func (s *bunStore) DeleteEntry(id int) error {
	// Get entry details before deleting for logging.
	details := fmt.Sprintf("id: %d", id)
	if e, err := GetEntryByIDBun(s.bun, id); err == nil && e != nil {
		details = e.String()
	}
	err := DeleteEntryBun(s.bun, id)
	if err == nil {
		_ = s.LogAction("DELETE_ENTRY", details)
	}
	return err
}

func (s *bunStore) SearchEntries(query string) ([]model.VaultEntry, error) {
	return SearchEntriesBun(s.bun, query)
}

func (s *bunStore) FilterEntriesByCategory(filter string) ([]model.VaultEntry, error) {
	return FilterEntriesByCategoryBun(s.bun, filter)
}

func (s *bunStore) GetCategories() ([]string, error) {
	return GetCategoriesBun(s.bun)
}

// --- Profile methods ---

func (s *bunStore) GetProfile() (*model.Profile, error) {
	return GetProfileBun(s.bun)
}

func (s *bunStore) SetProfile(name, passphraseHash string) error {
	err := SetProfileBun(s.bun, name, passphraseHash)
	if err == nil {
		_ = s.LogAction("SET_PROFILE", fmt.Sprintf("profile: %s", name))
	}
	return err
}

func (s *bunStore) DeleteProfile() error {
	// Get profile name before deleting for logging.
	details := "no profile"
	if p, err := GetProfileBun(s.bun); err == nil && p != nil {
		details = fmt.Sprintf("profile: %s", p.Name)
	}
	err := DeleteProfileBun(s.bun)
	if err == nil {
		_ = s.LogAction("REMOVE_PROFILE", details)
	}
	return err
}

// --- Audit log methods ---

func (s *bunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	return GetAllAuditLogEntriesBun(s.bun)
}

func (s *bunStore) LogAction(action string, details string) error {
	return LogActionBun(s.bun, action, details)
}

// --- Backup and restore methods ---

func (s *bunStore) ExportDataForBackup() (*model.BackupData, error) {
	return ExportDataForBackupBun(s.bun)
}

func (s *bunStore) ImportDataFromBackup(backup *model.BackupData) error {
	err := ImportDataFromBackupBun(s.bun, backup)
	if err == nil {
		_ = s.LogAction("IMPORT_BACKUP", backupDetails(backup))
	}
	return err
}

// mergeBackup is the shared body for IntegrateDataFromBackup; the dialect
// stores pass their ignore-on-conflict syntax.
func (s *bunStore) mergeBackup(backup *model.BackupData, insertVerb, conflictSuffix string) error {
	err := mergeBackupBun(s.bun, backup, insertVerb, conflictSuffix)
	if err == nil {
		_ = s.LogAction("MERGE_BACKUP", backupDetails(backup))
	}
	return err
}

func backupDetails(backup *model.BackupData) string {
	return fmt.Sprintf("entries: %d, profiles: %d", len(backup.Entries), len(backup.Profiles))
}
