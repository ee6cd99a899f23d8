// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.
package model

// BackupData is a container for all data to be exported for a backup.
// It holds slices of all the core models in Passkeep.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	// Data from each table.
	Entries         []VaultEntry    `json:"entries"`
	Profiles        []Profile       `json:"profiles"`
	AuditLogEntries []AuditLogEntry `json:"audit_log_entries"`
}
