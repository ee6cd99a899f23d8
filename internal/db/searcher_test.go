// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"testing"

	"github.com/passkeep/passkeep/internal/model"
	"github.com/uptrace/bun"
)

func TestSearcherAndManagerWrappers_Injection(t *testing.T) {
	// EntrySearcher
	SetDefaultEntrySearcher(&FakeEntrySearcher{Results: []model.VaultEntry{{Title: "f"}}})
	es := DefaultEntrySearcher()
	if es == nil {
		t.Fatal("expected DefaultEntrySearcher to return injected searcher")
	}
	res, err := es.SearchEntries("x")
	if err != nil || len(res) == 0 || res[0].Title != "f" {
		t.Fatalf("unexpected SearchEntries result: %v %v", res, err)
	}
	ClearDefaultEntrySearcher()

	// AuditSearcher
	SetDefaultAuditSearcher(&fakeAuditSearcher{})
	aus := DefaultAuditSearcher()
	if aus == nil {
		t.Fatal("expected DefaultAuditSearcher to return injected searcher")
	}
	ares, err := aus.GetAllAuditLogEntries()
	if err != nil || len(ares) == 0 {
		t.Fatalf("unexpected GetAllAuditLogEntries result: %v %v", ares, err)
	}
	ClearDefaultAuditSearcher()

	// EntryManager
	fm := &FakeEntryManager{}
	SetDefaultEntryManager(fm)
	em := DefaultEntryManager()
	if em == nil {
		t.Fatal("expected DefaultEntryManager to return injected manager")
	}
	id, err := em.AddEntry(model.VaultEntry{Title: "t", Password: "p"})
	if err != nil || id != 1 {
		t.Fatalf("unexpected AddEntry result: %d %v", id, err)
	}
	if err := em.DeleteEntry(id); err != nil {
		t.Fatalf("DeleteEntry returned error: %v", err)
	}
	if len(fm.Added) != 1 || len(fm.Deleted) != 1 {
		t.Fatalf("fake did not record mutations: %+v", fm)
	}
	ClearDefaultEntryManager()

	// AuditWriter
	fw := &FakeAuditWriter{}
	SetDefaultAuditWriter(fw)
	aw := DefaultAuditWriter()
	if aw == nil {
		t.Fatal("expected DefaultAuditWriter to return injected writer")
	}
	if err := aw.LogAction("a", "d"); err != nil {
		t.Fatalf("LogAction returned error: %v", err)
	}
	if len(fw.Actions) != 1 || fw.Actions[0] != "a" {
		t.Fatalf("fake writer did not record action: %+v", fw.Actions)
	}
	ClearDefaultAuditWriter()
}

type fakeAuditSearcher struct{}

func (f *fakeAuditSearcher) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	return []model.AuditLogEntry{{ID: 1, Action: "a"}}, nil
}

// fakeStore implements Store with minimal methods so we can set the package
// level `store` and exercise Default* wrapper paths that create Bun-backed
// searchers/managers. Methods return zero values and do not require a real DB.
type fakeStore struct{}

func (f *fakeStore) GetAllEntries() ([]model.VaultEntry, error)                  { return nil, nil }
func (f *fakeStore) GetEntry(id int) (*model.VaultEntry, error)                  { return nil, nil }
func (f *fakeStore) GetEntryByEntryID(entryID string) (*model.VaultEntry, error) { return nil, nil }
func (f *fakeStore) AddEntry(entry model.VaultEntry) (int, error)                { return 0, nil }
func (f *fakeStore) UpdateEntry(entry model.VaultEntry) error                    { return nil }
func (f *fakeStore) DeleteEntry(id int) error                                    { return nil }
func (f *fakeStore) SearchEntries(query string) ([]model.VaultEntry, error)      { return nil, nil }
func (f *fakeStore) FilterEntriesByCategory(filter string) ([]model.VaultEntry, error) {
	return nil, nil
}
func (f *fakeStore) GetCategories() ([]string, error)                      { return nil, nil }
func (f *fakeStore) GetProfile() (*model.Profile, error)                   { return nil, nil }
func (f *fakeStore) SetProfile(name, passphraseHash string) error          { return nil }
func (f *fakeStore) DeleteProfile() error                                  { return nil }
func (f *fakeStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) { return nil, nil }
func (f *fakeStore) LogAction(action string, details string) error         { return nil }
func (f *fakeStore) ExportDataForBackup() (*model.BackupData, error)       { return nil, nil }
func (f *fakeStore) ImportDataFromBackup(*model.BackupData) error          { return nil }
func (f *fakeStore) IntegrateDataFromBackup(*model.BackupData) error       { return nil }
func (f *fakeStore) BunDB() *bun.DB                                        { return nil }

func TestDefaultWrappers_WithStore(t *testing.T) {
	// Preserve original store and restore at the end.
	orig := store
	defer func() { store = orig }()

	store = &fakeStore{}

	if DefaultEntrySearcher() == nil {
		t.Fatal("expected DefaultEntrySearcher to return non-nil when store set")
	}
	if DefaultAuditSearcher() == nil {
		t.Fatal("expected DefaultAuditSearcher to return non-nil when store set")
	}
	if DefaultEntryManager() == nil {
		t.Fatal("expected DefaultEntryManager to return non-nil when store set")
	}
	if DefaultAuditWriter() == nil {
		t.Fatal("expected DefaultAuditWriter to return non-nil when store set")
	}

	store = nil
	if DefaultEntrySearcher() != nil {
		t.Fatal("expected DefaultEntrySearcher to return nil when store is nil")
	}
	if DefaultEntryManager() != nil {
		t.Fatal("expected DefaultEntryManager to return nil when store is nil")
	}
}
