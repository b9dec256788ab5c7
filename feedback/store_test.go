package feedback

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRecordAndList(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.Record(Entry{Statement: "the sky is blue", Verdict: "TRUE", Helpful: true})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected an assigned ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected an assigned timestamp")
	}

	if _, err := store.Record(Entry{Statement: "water is dry", Verdict: "FALSE", Helpful: false}); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestStoreRecordKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.Record(Entry{ID: "fixed-id", Statement: "x", Verdict: "UNKNOWN"})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if saved.ID != "fixed-id" {
		t.Errorf("explicit ID overwritten: %s", saved.ID)
	}
}
