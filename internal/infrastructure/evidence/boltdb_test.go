package evidence

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndListByUser(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "evidence.db"))

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{UserID: 1, TaskID: "gate", FileID: "file-a", SubmittedAt: base},
		{UserID: 1, TaskID: "library", FileID: "file-b", SubmittedAt: base.Add(time.Hour)},
		{UserID: 2, TaskID: "gate", FileID: "file-c", SubmittedAt: base},
	}
	for _, item := range items {
		if err := store.Put(item); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	got, err := store.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items for user 1, want 2", len(got))
	}
	for _, item := range got {
		if item.UserID != 1 {
			t.Errorf("foreign item leaked into listing: %+v", item)
		}
		if item.ID == "" {
			t.Error("item id was not assigned on Put")
		}
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 3 {
		t.Errorf("Size = %d, want 3", size)
	}
}

func TestCleanupDropsOldSubmissions(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "evidence.db"))

	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()

	if err := store.Put(Item{UserID: 1, TaskID: "gate", SubmittedAt: old}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(Item{UserID: 1, TaskID: "library", SubmittedAt: fresh}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	removed, err := store.Cleanup(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 1 {
		t.Errorf("Size = %d after cleanup, want 1", size)
	}
}

func TestOpenSnapshotsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evidence.db")

	first := openTestStore(t, path)
	if err := first.Put(Item{UserID: 1, TaskID: "gate"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	backups, err := filepath.Glob(path + ".bak-*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	info, err := os.Stat(backups[0])
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}
}

func TestOpenFreshFileMakesNoBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evidence.db")

	openTestStore(t, path)

	backups, err := filepath.Glob(path + ".bak-*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("unexpected backups for fresh store: %v", backups)
	}
}
