package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.AppendHistory(LocalSession, "actors"); err != nil {
		t.Fatalf("AppendHistory() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	n, err := store.CountHistory(LocalSession)
	if err != nil {
		t.Fatalf("CountHistory() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountHistory() = %d, expected 1", n)
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", MemoryPath, err)
	}
	defer store.Close()

	if _, err := store.AppendHistory("bob", "help"); err != nil {
		t.Fatalf("AppendHistory() failed: %v", err)
	}
	entries, err := store.LoadHistory("bob", 10)
	if err != nil {
		t.Fatalf("LoadHistory() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Command != "help" {
		t.Errorf("LoadHistory() = %+v, expected one help entry", entries)
	}
}

func TestStoreAppendAndLoad(t *testing.T) {
	store := openTestStore(t)

	for _, cmd := range []string{"add patito p", "move p 1 0", "actors"} {
		if _, err := store.AppendHistory(LocalSession, cmd); err != nil {
			t.Fatalf("AppendHistory() failed: %v", err)
		}
	}
	if _, err := store.AppendHistory("alice", "help"); err != nil {
		t.Fatalf("AppendHistory() failed: %v", err)
	}

	entries, err := store.LoadHistory(LocalSession, 0)
	if err != nil {
		t.Fatalf("LoadHistory() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("LoadHistory() returned %d entries, expected 3", len(entries))
	}
	if entries[0].Command != "add patito p" || entries[2].Command != "actors" {
		t.Errorf("LoadHistory() order = %q .. %q", entries[0].Command, entries[2].Command)
	}
	for _, e := range entries {
		if e.Session != LocalSession {
			t.Errorf("entry session = %q, expected %q", e.Session, LocalSession)
		}
	}
}

func TestStoreLoadHistoryLimitKeepsLatest(t *testing.T) {
	store := openTestStore(t)

	for _, cmd := range []string{"a", "b", "c", "d"} {
		if _, err := store.AppendHistory(LocalSession, cmd); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.LoadHistory(LocalSession, 2)
	if err != nil {
		t.Fatalf("LoadHistory() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "c" || entries[1].Command != "d" {
		t.Errorf("LoadHistory(2) = %+v, expected [c d]", entries)
	}
}

func TestStoreRecentHistory(t *testing.T) {
	store := openTestStore(t)

	store.AppendHistory("a", "one")
	store.AppendHistory("b", "two")

	entries, err := store.RecentHistory(10)
	if err != nil {
		t.Fatalf("RecentHistory() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "two" {
		t.Errorf("RecentHistory() = %+v, expected newest first", entries)
	}
}

func TestStoreCountAndClear(t *testing.T) {
	store := openTestStore(t)

	store.AppendHistory(LocalSession, "x")
	store.AppendHistory(LocalSession, "y")
	store.AppendHistory("other", "z")

	n, err := store.CountHistory(LocalSession)
	if err != nil || n != 2 {
		t.Errorf("CountHistory() = %d, %v, expected 2", n, err)
	}

	if err := store.ClearHistory(LocalSession); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	n, _ = store.CountHistory(LocalSession)
	if n != 0 {
		t.Errorf("CountHistory() after clear = %d, expected 0", n)
	}
	n, _ = store.CountHistory("other")
	if n != 1 {
		t.Errorf("other session was cleared too: %d", n)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.AppendHistory("b", "1")
	store.AppendHistory("a", "1")
	store.AppendHistory("a", "2")

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats() returned %d sessions, expected 2", len(stats))
	}
	if stats[0].Session != "a" || stats[0].Commands != 2 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[0].LastUsed.IsZero() {
		t.Error("LastUsed was not parsed")
	}
}
