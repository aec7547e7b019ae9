package blob

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStoreFirstRun(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "workouts.json"))

	data, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("expected absent blob on first run")
	}
}

func TestFileStoreSaveLoad(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "dir", "workouts.json"))

	if err := store.Save(context.Background(), []byte(`[{"id":"w1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `[{"id":"w1"}]` {
		t.Fatalf("unexpected data %q", data)
	}

	// Saving again replaces the previous blob.
	if err := store.Save(context.Background(), []byte(`[]`)); err != nil {
		t.Fatalf("resave: %v", err)
	}
	data, _, _ = store.Load(context.Background())
	if string(data) != `[]` {
		t.Fatalf("expected replacement, got %q", data)
	}
}

func TestFileStoreLoadError(t *testing.T) {
	// A directory at the blob path is unreadable as a file.
	dir := t.TempDir()
	store := NewFileStore(dir)

	_, _, err := store.Load(context.Background())
	if err == nil {
		t.Fatalf("expected error reading directory")
	}
}
