// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Passkeep.
// This file contains the SQLite implementation of the database store.
// SQLite is the default backend and the one exercised by the test suite.
package db // import "github.com/passkeep/passkeep/internal/db"

import "github.com/passkeep/passkeep/internal/model"

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bunStore
}

// IntegrateDataFromBackup restores from a backup without touching existing
// rows. SQLite spells skip-on-conflict as INSERT OR IGNORE.
func (s *SqliteStore) IntegrateDataFromBackup(backup *model.BackupData) error {
	return s.mergeBackup(backup, "INSERT OR IGNORE", "")
}
