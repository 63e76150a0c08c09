package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "daytally.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is not re-run.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	v, ok, err := s2.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "v" {
		t.Fatalf("Get after reopen = %q, %v; want v, true", v, ok)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "daytally.db" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Key-value
// ============================================================

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	v, ok, err := s.Get(KeyGoal)
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got %q, %v", v, ok)
	}
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set(KeyLanguage, "es"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(KeyLanguage)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "es" {
		t.Fatalf("Get = %q, %v; want es, true", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyLanguage, "es")
	s.Set(KeyLanguage, "pt-BR")

	v, _, _ := s.Get(KeyLanguage)
	if v != "pt-BR" {
		t.Fatalf("expected overwrite, got %q", v)
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 row after overwrite, got %d", len(all))
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyStorageConsent, "true")

	if err := s.Delete(KeyStorageConsent); err != nil {
		t.Fatal(err)
	}
	_, ok, err := s.Get(KeyStorageConsent)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("key should be gone after delete")
	}

	// Deleting again is a no-op.
	if err := s.Delete(KeyStorageConsent); err != nil {
		t.Fatalf("delete of missing key: %v", err)
	}
}

func TestAllOrdered(t *testing.T) {
	s := newTestStore(t)
	s.Set("b", "2")
	s.Set("a", "1")
	s.Set("c", "3")

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].Key != want {
			t.Fatalf("all[%d].Key = %q, want %q", i, all[i].Key, want)
		}
	}
	if all[0].UpdatedAt.IsZero() {
		t.Fatal("UpdatedAt should be set")
	}
}

func TestAllRejectsBadTimestamp(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('x', '1', 'yesterday')`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.All(); err == nil {
		t.Fatal("expected error for unparseable updated_at")
	}
}

func TestClosedStoreErrors(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if err := s.Set("k", "v"); err == nil {
		t.Fatal("expected error writing to closed store")
	}
	if _, _, err := s.Get("k"); err == nil {
		t.Fatal("expected error reading closed store")
	}
}
