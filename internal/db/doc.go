// Package db contains the data-access layer and small DI helpers used by
// Passkeep.
//
// This package exposes a small set of lightweight interfaces and package-level
// helpers that make it easy to inject fakes for tests while preserving a
// centralized Bun-based implementation for production.
//
// DI helpers
//   - `Default*` functions return a sensible default implementation when the
//     package-level `store` has been initialized (via `InitDB`) or when a
//     package-level override has been set by tests.
//   - `SetDefault*` and `ClearDefault*` functions allow tests to inject simple
//     fakes that implement the same small interface (`EntrySearcher`,
//     `EntryManager`, `AuditSearcher`, `AuditWriter`).
//
// EntryManager guidance
//   - The `EntryManager` interface centralizes vault entry mutations. Prefer
//     using `DefaultEntryManager()` in callers (or inject an `EntryManager`)
//     instead of calling low-level `Store` methods directly. This makes code
//     simpler to test and decouples UI/CLI code from store implementation
//     details.
//   - Low-level Bun helpers (used for SQL queries) live in `bun_adapter.go`.
//     The store methods call those helpers and are responsible for
//     higher-level concerns such as audit logging.
//
// Testing notes
//   - Prefer `db.InitDB("sqlite", "file:name?mode=memory&cache=shared")` in
//     tests that need real DB semantics and migrations.
//   - For fast unit tests that don't need a DB, inject `FakeEntrySearcher` or
//     `FakeEntryManager` via `SetDefaultEntrySearcher` / `SetDefaultEntryManager`.
package db
