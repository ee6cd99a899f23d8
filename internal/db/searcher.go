// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/passkeep/passkeep/internal/model"
	"github.com/uptrace/bun"
)

// EntrySearcher defines a minimal interface for searching vault entries.
// Consumers can depend on this instead of concrete Store implementations.
type EntrySearcher interface {
	SearchEntries(query string) ([]model.VaultEntry, error)
}

// BunEntrySearcher is a Bun-based implementation of EntrySearcher.
type BunEntrySearcher struct {
	bdb *bun.DB
}

// NewBunEntrySearcher creates a new BunEntrySearcher.
func NewBunEntrySearcher(bdb *bun.DB) EntrySearcher {
	return &BunEntrySearcher{bdb: bdb}
}

// NewEntrySearcherFromStore creates an EntrySearcher from any Store by using
// the underlying Bun DB.
func NewEntrySearcherFromStore(s Store) EntrySearcher {
	return NewBunEntrySearcher(s.BunDB())
}

// SearchEntries delegates to the centralized Bun search helper.
func (s *BunEntrySearcher) SearchEntries(q string) ([]model.VaultEntry, error) {
	return SearchEntriesBun(s.bdb, q)
}

// DefaultEntrySearcher returns an EntrySearcher backed by the package-level
// `store` if available. It returns nil when the package store is not
// initialized; callers should handle nil by falling back to local filtering.
func DefaultEntrySearcher() EntrySearcher {
	// If a test or other code has injected a default searcher, prefer that.
	if defaultEntrySearcher != nil {
		return defaultEntrySearcher
	}
	if store == nil {
		return nil
	}
	return NewEntrySearcherFromStore(store)
}

// package-level override used primarily by tests to inject a fake searcher.
var defaultEntrySearcher EntrySearcher

// SetDefaultEntrySearcher sets a package-level EntrySearcher that will be
// returned by DefaultEntrySearcher(). Useful for tests to inject a fake.
func SetDefaultEntrySearcher(s EntrySearcher) {
	defaultEntrySearcher = s
}

// ClearDefaultEntrySearcher clears any previously set package-level searcher.
func ClearDefaultEntrySearcher() {
	defaultEntrySearcher = nil
}

// AuditSearcher defines a minimal interface for retrieving audit log entries.
type AuditSearcher interface {
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
}

// BunAuditSearcher is a Bun-based implementation of AuditSearcher.
type BunAuditSearcher struct {
	bdb *bun.DB
}

// NewBunAuditSearcher creates a new BunAuditSearcher.
func NewBunAuditSearcher(bdb *bun.DB) AuditSearcher {
	return &BunAuditSearcher{bdb: bdb}
}

// NewAuditSearcherFromStore creates an AuditSearcher from any Store by using
// the underlying Bun DB.
func NewAuditSearcherFromStore(s Store) AuditSearcher {
	return NewBunAuditSearcher(s.BunDB())
}

// GetAllAuditLogEntries delegates to the centralized Bun helper.
func (s *BunAuditSearcher) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	return GetAllAuditLogEntriesBun(s.bdb)
}

// DefaultAuditSearcher returns an AuditSearcher backed by the package-level
// `store` if available. It returns nil when the package store is not
// initialized.
func DefaultAuditSearcher() AuditSearcher {
	if defaultAuditSearcher != nil {
		return defaultAuditSearcher
	}
	if store == nil {
		return nil
	}
	return NewAuditSearcherFromStore(store)
}

// package-level override used primarily by tests to inject a fake audit searcher.
var defaultAuditSearcher AuditSearcher

// SetDefaultAuditSearcher sets a package-level AuditSearcher that will be
// returned by DefaultAuditSearcher(). Useful for tests to inject a fake.
func SetDefaultAuditSearcher(s AuditSearcher) {
	defaultAuditSearcher = s
}

// ClearDefaultAuditSearcher clears any previously set package-level audit searcher.
func ClearDefaultAuditSearcher() {
	defaultAuditSearcher = nil
}

// EntryManager defines a minimal interface for mutating vault entries.
// This allows higher-level components to avoid depending directly on the
// Store implementation and enables tests to inject fakes.
type EntryManager interface {
	AddEntry(entry model.VaultEntry) (int, error)
	UpdateEntry(entry model.VaultEntry) error
	DeleteEntry(id int) error
}

// DefaultEntryManager returns an EntryManager backed by the package-level
// `store` if available. Tests may inject a fake via SetDefaultEntryManager.
func DefaultEntryManager() EntryManager {
	if defaultEntryManager != nil {
		return defaultEntryManager
	}
	if store == nil {
		return nil
	}
	return &bunEntryManager{bStore: store}
}

// bunEntryManager adapts the existing Store to the EntryManager interface.
// Audit logging happens in the store methods, so this stays a plain delegate.
type bunEntryManager struct {
	bStore Store
}

func (b *bunEntryManager) AddEntry(entry model.VaultEntry) (int, error) {
	return b.bStore.AddEntry(entry)
}

func (b *bunEntryManager) UpdateEntry(entry model.VaultEntry) error {
	return b.bStore.UpdateEntry(entry)
}

func (b *bunEntryManager) DeleteEntry(id int) error {
	return b.bStore.DeleteEntry(id)
}

// package-level override used primarily by tests to inject a fake entry manager.
var defaultEntryManager EntryManager

// SetDefaultEntryManager sets a package-level EntryManager that will be
// returned by DefaultEntryManager(). Useful for tests to inject a fake.
func SetDefaultEntryManager(m EntryManager) {
	defaultEntryManager = m
}

// ClearDefaultEntryManager clears any previously set package-level entry manager.
func ClearDefaultEntryManager() {
	defaultEntryManager = nil
}

// AuditWriter defines a minimal interface for recording audit log events.
type AuditWriter interface {
	LogAction(action string, details string) error
}

// BunAuditWriter is a Bun-based implementation of AuditWriter.
type BunAuditWriter struct {
	bdb *bun.DB
}

// NewBunAuditWriter creates a new BunAuditWriter.
func NewBunAuditWriter(bdb *bun.DB) AuditWriter {
	return &BunAuditWriter{bdb: bdb}
}

// NewAuditWriterFromStore creates an AuditWriter from any Store by using
// the underlying Bun DB.
func NewAuditWriterFromStore(s Store) AuditWriter {
	return NewBunAuditWriter(s.BunDB())
}

// LogAction delegates to the centralized Bun helper.
func (s *BunAuditWriter) LogAction(action string, details string) error {
	return LogActionBun(s.bdb, action, details)
}

// DefaultAuditWriter returns an AuditWriter backed by the package-level
// `store` if available. It returns nil when the package store is not
// initialized; callers should handle nil by falling back to direct helpers.
func DefaultAuditWriter() AuditWriter {
	if defaultAuditWriter != nil {
		return defaultAuditWriter
	}
	if store == nil {
		return nil
	}
	return NewAuditWriterFromStore(store)
}

// package-level override used primarily by tests to inject a fake audit writer.
var defaultAuditWriter AuditWriter

// SetDefaultAuditWriter sets a package-level AuditWriter that will be
// returned by DefaultAuditWriter(). Useful for tests to inject a fake.
func SetDefaultAuditWriter(w AuditWriter) {
	defaultAuditWriter = w
}

// ClearDefaultAuditWriter clears any previously set package-level audit writer.
func ClearDefaultAuditWriter() {
	defaultAuditWriter = nil
}
