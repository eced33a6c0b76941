package logstore

import (
	"context"
	"path/filepath"
	"testing"
)

func createTestSQLiteStore(t *testing.T, key string) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "changelog.db")
	store, err := NewSQLiteStore(dbPath, key)
	if err != nil {
		t.Fatalf("Failed to create SQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreReadAllEmpty(t *testing.T) {
	store := createTestSQLiteStore(t, "task-changelog-development")

	got, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll on empty store: %v", err)
	}
	if got != "" {
		t.Errorf("ReadAll = %q, want empty string", got)
	}
}

func TestSQLiteStoreAppendOrder(t *testing.T) {
	store := createTestSQLiteStore(t, "task-changelog-development")
	ctx := context.Background()

	for _, e := range []string{"a\n", "b\n", "c\n"} {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append(%q): %v", e, err)
		}
	}

	got, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != "a\nb\nc\n" {
		t.Errorf("ReadAll = %q, want %q", got, "a\nb\nc\n")
	}
}

func TestSQLiteStoreKeysIsolated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "changelog.db")

	prod, err := NewSQLiteStore(dbPath, "task-changelog-production")
	if err != nil {
		t.Fatalf("Failed to create production store: %v", err)
	}
	defer prod.Close()

	dev, err := NewSQLiteStore(dbPath, "task-changelog-development")
	if err != nil {
		t.Fatalf("Failed to create development store: %v", err)
	}
	defer dev.Close()

	ctx := context.Background()
	if err := prod.Append(ctx, "prod entry\n"); err != nil {
		t.Fatalf("Append to production: %v", err)
	}

	got, err := dev.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll from development: %v", err)
	}
	if got != "" {
		t.Errorf("development blob = %q, want empty (keys must not share content)", got)
	}
}

func TestSQLiteStoreOverwriteAndMetadata(t *testing.T) {
	store := createTestSQLiteStore(t, "task-changelog-preview")
	ctx := context.Background()

	if err := store.Append(ctx, "before"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Overwrite(ctx, "after"); err != nil {
		t.Fatalf("Overwrite: %v", err)
	}

	got, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != "after" {
		t.Errorf("ReadAll = %q, want %q", got, "after")
	}

	meta, err := store.Metadata(ctx)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if meta.SizeBytes != int64(len("after")) {
		t.Errorf("SizeBytes = %d, want %d", meta.SizeBytes, len("after"))
	}
}
