// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/passkeep/passkeep/internal/model"
)

// TestIntegration_Smoke runs a minimal integration test against a real DB.
// It requires two env vars to be set by CI: INTEGRATION_DB ("postgres" or "mysql")
// and INTEGRATION_DSN (the driver DSN). If not present the test is skipped.
func TestIntegration_Smoke(t *testing.T) {
	dbType := os.Getenv("INTEGRATION_DB")
	dsn := os.Getenv("INTEGRATION_DSN")
	if dbType == "" || dsn == "" {
		t.Skip("integration DB env not set; skipping")
	}

	// Retry connecting for a short while to allow service startup in CI.
	var storeInst Store
	var err error
	for i := 0; i < 30; i++ {
		storeInst, err = NewStoreFromDSN(dbType, dsn)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		t.Fatalf("failed to initialize store for integration DB (%s): %v", dbType, err)
	}

	// Basic operations: add an entry, look it up, verify duplicate detection.
	id, err := storeInst.AddEntry(model.VaultEntry{Title: "int-entry", Password: "x", EntryID: "int-fixed-id"})
	if err != nil {
		t.Fatalf("AddEntry failed on %s: %v", dbType, err)
	}
	if _, err := storeInst.GetEntry(id); err != nil {
		t.Fatalf("GetEntry failed on %s: %v", dbType, err)
	}
	if _, err := storeInst.AddEntry(model.VaultEntry{Title: "dup", Password: "x", EntryID: "int-fixed-id"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on %s, got: %v", dbType, err)
	}

	// Profile round trip.
	if err := storeInst.SetProfile("int-user", "int-hash"); err != nil {
		t.Fatalf("SetProfile failed on %s: %v", dbType, err)
	}
	p, err := storeInst.GetProfile()
	if err != nil || p == nil || p.Name != "int-user" {
		t.Fatalf("GetProfile failed on %s: %+v %v", dbType, p, err)
	}

	// Clean up so repeated CI runs start from a known state.
	if err := storeInst.DeleteEntry(id); err != nil {
		t.Fatalf("DeleteEntry failed on %s: %v", dbType, err)
	}
	if err := storeInst.DeleteProfile(); err != nil {
		t.Fatalf("DeleteProfile failed on %s: %v", dbType, err)
	}
}

// Cross-backend connection checks. These run only when the corresponding DSN
// environment variable is set and are skipped by default to keep local
// developer test runs fast.
func TestCrossBackend_Postgres(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set; skipping Postgres integration test")
	}
	if _, err := New("postgres", dsn); err != nil {
		t.Fatalf("postgres New failed: %v", err)
	}
}

func TestCrossBackend_MySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set; skipping MySQL integration test")
	}
	if _, err := New("mysql", dsn); err != nil {
		t.Fatalf("mysql New failed: %v", err)
	}
}
