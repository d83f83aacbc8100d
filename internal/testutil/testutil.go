// Package testutil provides shared test helpers for setting up vaults,
// index databases, and settings stores.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/settings"
	"github.com/starford/raido/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestSettings creates a settings store backed by a temp file, pre-seeded
// through mutate (nil keeps the defaults).
func TestSettings(t *testing.T, mutate func(*settings.Settings)) *settings.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	st, err := settings.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if mutate != nil {
		if err := st.Update(mutate); err != nil {
			t.Fatal(err)
		}
	}
	return st
}
