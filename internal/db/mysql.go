// package db provides the data access layer for Passkeep.
// This file contains the MySQL implementation of the database store.
// Note: the MySQL DSN should include `?parseTime=true` so DATETIME columns
// scan into time.Time correctly.
package db

import (
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/passkeep/passkeep/internal/model"
)

// MySQLStore is the MySQL implementation of the Store interface.
type MySQLStore struct {
	bunStore
}

// IntegrateDataFromBackup restores from a backup without touching existing
// rows. MySQL spells skip-on-conflict as INSERT IGNORE.
func (s *MySQLStore) IntegrateDataFromBackup(backup *model.BackupData) error {
	return s.mergeBackup(backup, "INSERT IGNORE", "")
}
