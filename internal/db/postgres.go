// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Passkeep.
// This file contains the PostgreSQL implementation of the database store.
package db // import "github.com/passkeep/passkeep/internal/db"

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/passkeep/passkeep/internal/model"
)

// PostgresStore is the PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	bunStore
}

// IntegrateDataFromBackup restores from a backup without touching existing
// rows. Postgres spells skip-on-conflict as a bare ON CONFLICT DO NOTHING,
// which covers any unique constraint on the target table.
func (s *PostgresStore) IntegrateDataFromBackup(backup *model.BackupData) error {
	return s.mergeBackup(backup, "INSERT", "ON CONFLICT DO NOTHING")
}

// ImportDataFromBackup restores from a backup, then realigns the id sequences.
// Restoring explicit ids does not advance Postgres sequences, so without this
// the next insert would collide with a restored row.
func (s *PostgresStore) ImportDataFromBackup(backup *model.BackupData) error {
	if err := s.bunStore.ImportDataFromBackup(backup); err != nil {
		return err
	}
	return s.resetSequences()
}

func (s *PostgresStore) resetSequences() error {
	ctx := context.Background()
	for _, table := range []string{"vault_entries", "profiles", "audit_log"} {
		query := "SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM " + table + "), 0) + 1, false)"
		if _, err := ExecRaw(ctx, s.bun, query, table); err != nil {
			return err
		}
	}
	return nil
}
