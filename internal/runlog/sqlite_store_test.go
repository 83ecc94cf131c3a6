package runlog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteStore_AttemptLifecycle(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLiteStore(filepath.Join(dir, "runlog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	now := time.Now().UTC().Truncate(time.Second)

	ok := &Attempt{
		RunID:       "run-1",
		Model:       "deepseek-ocr:latest",
		ImageStem:   "receipt-01",
		Status:      StatusCompleted,
		OutputBytes: 120,
		Duration:    1500 * time.Millisecond,
		CreatedAt:   now,
	}
	if err := store.RecordAttempt(ok); err != nil {
		t.Fatalf("RecordAttempt completed: %v", err)
	}

	failed := &Attempt{
		RunID:     "run-1",
		Model:     "deepseek-ocr:latest",
		ImageStem: "receipt-02",
		Status:    StatusFailed,
		ErrorMessage: func() *string {
			v := "ollama status 500"
			return &v
		}(),
		CreatedAt: now.Add(time.Second),
	}
	if err := store.RecordAttempt(failed); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}

	// A different run must not leak into the listing.
	other := &Attempt{RunID: "run-2", Model: "m", ImageStem: "x", Status: StatusCompleted, CreatedAt: now}
	if err := store.RecordAttempt(other); err != nil {
		t.Fatalf("RecordAttempt other run: %v", err)
	}

	got, err := store.ListRun("run-1")
	if err != nil {
		t.Fatalf("ListRun: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(got))
	}
	if got[0].ImageStem != "receipt-01" || got[0].Status != StatusCompleted {
		t.Fatalf("first attempt mismatch: %+v", got[0])
	}
	if got[0].OutputBytes != 120 || got[0].Duration != 1500*time.Millisecond {
		t.Fatalf("first attempt stats mismatch: %+v", got[0])
	}
	if got[1].Status != StatusFailed {
		t.Fatalf("second attempt should be failed: %+v", got[1])
	}
	if got[1].ErrorMessage == nil || *got[1].ErrorMessage != "ollama status 500" {
		t.Fatalf("error message mismatch: %+v", got[1].ErrorMessage)
	}
	if !got[0].CreatedAt.Equal(now) {
		t.Fatalf("created_at round-trip mismatch: %v vs %v", got[0].CreatedAt, now)
	}
}

func TestSQLiteStore_RejectsInvalidAttempt(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runlog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	if err := store.RecordAttempt(nil); err == nil {
		t.Fatalf("expected error for nil attempt")
	}
	if err := store.RecordAttempt(&Attempt{}); err == nil {
		t.Fatalf("expected error for missing run id")
	}
}
