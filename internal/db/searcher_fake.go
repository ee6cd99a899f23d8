package db

import "github.com/passkeep/passkeep/internal/model"

// FakeEntrySearcher is a minimal, configurable fake used by tests.
type FakeEntrySearcher struct {
	// Results to return from SearchEntries. If nil, an empty slice is returned.
	Results []model.VaultEntry
	// Err to return from SearchEntries if non-nil.
	Err error
}

// SearchEntries implements EntrySearcher for the fake.
func (f *FakeEntrySearcher) SearchEntries(query string) ([]model.VaultEntry, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Results == nil {
		return []model.VaultEntry{}, nil
	}
	return f.Results, nil
}

// FakeAuditWriter records actions in memory so tests can assert on them.
type FakeAuditWriter struct {
	Actions []string
	Details []string
	// Err to return from LogAction if non-nil.
	Err error
}

// LogAction implements AuditWriter for the fake.
func (f *FakeAuditWriter) LogAction(action string, details string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Actions = append(f.Actions, action)
	f.Details = append(f.Details, details)
	return nil
}

// FakeAuditSearcher serves a canned audit log to tests.
type FakeAuditSearcher struct {
	Entries []model.AuditLogEntry
	// Err to return from GetAllAuditLogEntries if non-nil.
	Err error
}

// GetAllAuditLogEntries implements AuditSearcher for the fake.
func (f *FakeAuditSearcher) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Entries == nil {
		return []model.AuditLogEntry{}, nil
	}
	return f.Entries, nil
}

// FakeEntryManager is a configurable EntryManager fake for tests.
type FakeEntryManager struct {
	Added   []model.VaultEntry
	Updated []model.VaultEntry
	Deleted []int
	// NextID is returned (and incremented) by AddEntry.
	NextID int
	// Err to return from every method if non-nil.
	Err error
}

// AddEntry implements EntryManager for the fake.
func (f *FakeEntryManager) AddEntry(entry model.VaultEntry) (int, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.NextID++
	entry.ID = f.NextID
	f.Added = append(f.Added, entry)
	return entry.ID, nil
}

// UpdateEntry implements EntryManager for the fake.
func (f *FakeEntryManager) UpdateEntry(entry model.VaultEntry) error {
	if f.Err != nil {
		return f.Err
	}
	f.Updated = append(f.Updated, entry)
	return nil
}

// DeleteEntry implements EntryManager for the fake.
func (f *FakeEntryManager) DeleteEntry(id int) error {
	if f.Err != nil {
		return f.Err
	}
	f.Deleted = append(f.Deleted, id)
	return nil
}
