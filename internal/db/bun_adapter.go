package db

import (
	"context"
	"database/sql"
	"fmt"
	"os/user"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/passkeep/passkeep/internal/model"
	"github.com/uptrace/bun"
)

// VaultEntryModel maps the `vault_entries` table for Bun queries.
type VaultEntryModel struct {
	bun.BaseModel `bun:"table:vault_entries"`
	ID            int       `bun:"id,pk,autoincrement"`
	EntryID       string    `bun:"entry_id"`
	Title         string    `bun:"title"`
	Username      string    `bun:"username"`
	Password      string    `bun:"password"`
	URL           string    `bun:"url"`
	Notes         string    `bun:"notes"`
	Category      string    `bun:"category"`
	CreatedAt     time.Time `bun:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at"`
}

// ProfileModel maps the `profiles` table.
type ProfileModel struct {
	bun.BaseModel  `bun:"table:profiles"`
	ID             int       `bun:"id,pk,autoincrement"`
	Name           string    `bun:"name"`
	PassphraseHash string    `bun:"passphrase_hash"`
	CreatedAt      time.Time `bun:"created_at"`
}

// AuditLogModel maps the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Username      string    `bun:"username"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

// --- Mapping helpers (centralized conversions) ---
func entryModelToModel(e VaultEntryModel) model.VaultEntry {
	return model.VaultEntry{
		ID:        e.ID,
		EntryID:   e.EntryID,
		Title:     e.Title,
		Username:  e.Username,
		Password:  e.Password,
		URL:       e.URL,
		Notes:     e.Notes,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func entryModelFromModel(e model.VaultEntry) VaultEntryModel {
	return VaultEntryModel{
		ID:        e.ID,
		EntryID:   e.EntryID,
		Title:     e.Title,
		Username:  e.Username,
		Password:  e.Password,
		URL:       e.URL,
		Notes:     e.Notes,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func profileModelToModel(p ProfileModel) model.Profile {
	return model.Profile{ID: p.ID, Name: p.Name, PassphraseHash: p.PassphraseHash, CreatedAt: p.CreatedAt}
}

func auditLogModelToModel(a AuditLogModel) model.AuditLogEntry {
	return model.AuditLogEntry{ID: a.ID, Timestamp: a.Timestamp, Username: a.Username, Action: a.Action, Details: a.Details}
}

// GetAllEntriesBun returns all vault entries ordered by title, then username.
func GetAllEntriesBun(bdb *bun.DB) ([]model.VaultEntry, error) {
	ctx := context.Background()
	var em []VaultEntryModel
	err := bdb.NewSelect().Model(&em).OrderExpr("LOWER(title), username").Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.VaultEntry, 0, len(em))
	for _, e := range em {
		out = append(out, entryModelToModel(e))
	}
	return out, nil
}

// GetEntryByIDBun returns one vault entry by its row id, or ErrNotFound.
func GetEntryByIDBun(bdb *bun.DB, id int) (*model.VaultEntry, error) {
	ctx := context.Background()
	var em VaultEntryModel
	err := bdb.NewSelect().Model(&em).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m := entryModelToModel(em)
	return &m, nil
}

// GetEntryByEntryIDBun returns one vault entry by its stable entry id, or ErrNotFound.
func GetEntryByEntryIDBun(bdb *bun.DB, entryID string) (*model.VaultEntry, error) {
	ctx := context.Background()
	var em VaultEntryModel
	err := bdb.NewSelect().Model(&em).Where("entry_id = ?", entryID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m := entryModelToModel(em)
	return &m, nil
}

// AddEntryBun inserts a new vault entry and returns its row id. A missing
// entry id is filled with a fresh UUID; timestamps are set here rather than
// by column defaults so all backends behave identically.
func AddEntryBun(bdb *bun.DB, entry model.VaultEntry) (int, error) {
	ctx := context.Background()
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	em := entryModelFromModel(entry)
	em.ID = 0
	// Use Bun's NewInsert with Returning to support Postgres and MySQL.
	if _, err := bdb.NewInsert().Model(&em).Returning("id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return em.ID, nil
}

// UpdateEntryBun updates an existing vault entry by row id. The entry id and
// creation timestamp are never touched.
func UpdateEntryBun(bdb *bun.DB, entry model.VaultEntry) error {
	ctx := context.Background()
	entry.UpdatedAt = time.Now().UTC()
	em := entryModelFromModel(entry)
	res, err := bdb.NewUpdate().Model(&em).
		Column("title", "username", "password", "url", "notes", "category", "updated_at").
		Where("id = ?", em.ID).
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntryBun removes a vault entry by row id, or returns ErrNotFound.
func DeleteEntryBun(bdb *bun.DB, id int) error {
	ctx := context.Background()
	res, err := bdb.NewDelete().Model((*VaultEntryModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchEntriesBun performs a portable fuzzy search over vault entries using
// simple tokenized LIKE matching across title, username, url, notes, and
// category. Tokens are ANDed together; within each token we match against
// any of the columns.
func SearchEntriesBun(bdb *bun.DB, q string) ([]model.VaultEntry, error) {
	ctx := context.Background()
	tokens := TokenizeSearchQuery(q)
	var em []VaultEntryModel
	qb := bdb.NewSelect().Model(&em)
	if len(tokens) > 0 {
		// Build WHERE clause with AND of ORs: for each token, require it matches one of the columns
		// e.g., WHERE (LOWER(title) LIKE '%t1%' OR LOWER(username) LIKE '%t1%' OR ...)
		for _, tok := range tokens {
			like := "%" + tok + "%"
			// Use LOWER(...) for case-insensitive matching across engines
			qb = qb.Where("(LOWER(title) LIKE ? OR LOWER(username) LIKE ? OR LOWER(url) LIKE ? OR LOWER(notes) LIKE ? OR LOWER(category) LIKE ?)", like, like, like, like, like)
		}
	}
	if err := qb.OrderExpr("LOWER(title), username").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.VaultEntry, 0, len(em))
	for _, e := range em {
		out = append(out, entryModelToModel(e))
	}
	return out, nil
}

// FilterEntriesByCategoryBun returns entries whose category matches the given
// filter expression (see catexpr.go for the syntax).
func FilterEntriesByCategoryBun(bdb *bun.DB, filter string) ([]model.VaultEntry, error) {
	ctx := context.Background()
	apply, err := CategoryQueryBuilder(filter)
	if err != nil {
		return nil, err
	}
	var em []VaultEntryModel
	sel := bdb.NewSelect().Model(&em).ApplyQueryBuilder(apply).OrderExpr("LOWER(title), username")
	if err := sel.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.VaultEntry, 0, len(em))
	for _, e := range em {
		out = append(out, entryModelToModel(e))
	}
	return out, nil
}

// GetCategoriesBun returns the distinct non-empty categories in use, sorted.
func GetCategoriesBun(bdb *bun.DB) ([]string, error) {
	ctx := context.Background()
	var cats []string
	if err := QueryRawInto(ctx, bdb, &cats, "SELECT DISTINCT category FROM vault_entries WHERE category <> '' ORDER BY category"); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetProfileBun returns the local profile, or (nil, nil) when none is set.
func GetProfileBun(bdb *bun.DB) (*model.Profile, error) {
	ctx := context.Background()
	var pm ProfileModel
	err := bdb.NewSelect().Model(&pm).OrderExpr("id").Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	m := profileModelToModel(pm)
	return &m, nil
}

// SetProfileBun creates or replaces the single local profile within one
// transaction. At most one profile row exists at any time.
func SetProfileBun(bdb *bun.DB, name, passphraseHash string) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		if _, err := ExecRaw(ctx, tx, "DELETE FROM profiles"); err != nil {
			return err
		}
		pm := &ProfileModel{Name: name, PassphraseHash: passphraseHash, CreatedAt: time.Now().UTC()}
		if _, err := tx.NewInsert().Model(pm).Exec(ctx); err != nil {
			return MapDBError(err)
		}
		return nil
	})
}

// DeleteProfileBun removes any local profile. Removing an absent profile is
// not an error.
func DeleteProfileBun(bdb *bun.DB) error {
	ctx := context.Background()
	_, err := ExecRaw(ctx, bdb, "DELETE FROM profiles")
	return err
}

// GetAllAuditLogEntriesBun retrieves audit log entries, most recent first.
// The id tiebreak keeps ordering stable when several rows share a timestamp.
func GetAllAuditLogEntriesBun(bdb *bun.DB) ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var am []AuditLogModel
	if err := bdb.NewSelect().Model(&am).OrderExpr("timestamp DESC, id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(am))
	for _, a := range am {
		out = append(out, auditLogModelToModel(a))
	}
	return out, nil
}

// LogActionBun inserts an audit log entry with the current OS user.
func LogActionBun(bdb *bun.DB, action string, details string) error {
	ctx := context.Background()
	curUser, err := user.Current()
	username := "unknown"
	if err == nil {
		if parts := strings.Split(curUser.Username, `\`); len(parts) > 1 {
			username = parts[1]
		} else {
			username = curUser.Username
		}
	}
	_, err = ExecRaw(ctx, bdb, "INSERT INTO audit_log (username, action, details) VALUES (?, ?, ?)", username, action, details)
	return MapDBError(err)
}

// ExportDataForBackupBun exports all tables' data into a model.BackupData using a Bun transaction.
func ExportDataForBackupBun(bdb *bun.DB) (*model.BackupData, error) {
	ctx := context.Background()
	var backup *model.BackupData
	err := WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		backup = &model.BackupData{SchemaVersion: 1}

		// Vault entries
		var entries []VaultEntryModel
		if err := tx.NewSelect().Model(&entries).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, e := range entries {
			backup.Entries = append(backup.Entries, entryModelToModel(e))
		}

		// Profiles
		var profiles []ProfileModel
		if err := tx.NewSelect().Model(&profiles).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, p := range profiles {
			backup.Profiles = append(backup.Profiles, profileModelToModel(p))
		}

		// Audit log
		var als []AuditLogModel
		if err := tx.NewSelect().Model(&als).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, a := range als {
			backup.AuditLogEntries = append(backup.AuditLogEntries, auditLogModelToModel(a))
		}

		return nil
	})
	return backup, err
}

// ImportDataFromBackupBun performs a full wipe-and-replace using a Bun transaction.
// Row ids are restored verbatim so listings look exactly as they did at backup time.
func ImportDataFromBackupBun(bdb *bun.DB, backup *model.BackupData) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		// Wipe tables
		tables := []string{"audit_log", "profiles", "vault_entries"}
		for _, t := range tables {
			if _, err := ExecRaw(ctx, tx, fmt.Sprintf("DELETE FROM %s", t)); err != nil {
				return err
			}
		}

		// Insert vault entries
		for _, e := range backup.Entries {
			if _, err := ExecRaw(ctx, tx, "INSERT INTO vault_entries (id, entry_id, title, username, password, url, notes, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
				e.ID, e.EntryID, e.Title, e.Username, e.Password, e.URL, e.Notes, e.Category, e.CreatedAt, e.UpdatedAt); err != nil {
				return MapDBError(err)
			}
		}
		// Profiles
		for _, p := range backup.Profiles {
			if _, err := ExecRaw(ctx, tx, "INSERT INTO profiles (id, name, passphrase_hash, created_at) VALUES (?, ?, ?, ?)",
				p.ID, p.Name, p.PassphraseHash, p.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		// Audit log
		for _, ale := range backup.AuditLogEntries {
			if _, err := ExecRaw(ctx, tx, "INSERT INTO audit_log (id, timestamp, username, action, details) VALUES (?, ?, ?, ?, ?)",
				ale.ID, ale.Timestamp, ale.Username, ale.Action, ale.Details); err != nil {
				return MapDBError(err)
			}
		}
		return nil
	})
}

// mergeBackupBun performs a non-destructive restore: backup rows that collide
// with existing ones (same entry id, or same profile name) are skipped. The
// audit log is deliberately not merged; foreign history stays in its backup.
// insertVerb and conflictSuffix carry the dialect-specific ignore syntax,
// e.g. ("INSERT OR IGNORE", "") for SQLite.
func mergeBackupBun(bdb *bun.DB, backup *model.BackupData, insertVerb, conflictSuffix string) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, e := range backup.Entries {
			entryID := e.EntryID
			if entryID == "" {
				entryID = uuid.NewString()
			}
			query := fmt.Sprintf("%s INTO vault_entries (entry_id, title, username, password, url, notes, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) %s", insertVerb, conflictSuffix)
			if _, err := ExecRaw(ctx, tx, strings.TrimSpace(query),
				entryID, e.Title, e.Username, e.Password, e.URL, e.Notes, e.Category, e.CreatedAt, e.UpdatedAt); err != nil {
				return err
			}
		}
		for _, p := range backup.Profiles {
			query := fmt.Sprintf("%s INTO profiles (name, passphrase_hash, created_at) VALUES (?, ?, ?) %s", insertVerb, conflictSuffix)
			if _, err := ExecRaw(ctx, tx, strings.TrimSpace(query),
				p.Name, p.PassphraseHash, p.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}
