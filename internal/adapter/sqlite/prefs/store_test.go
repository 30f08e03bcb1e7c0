package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_DefaultsToOpen(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	state, err := s.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(state) != len(Sections) {
		t.Fatalf("expected %d sections, got %d", len(Sections), len(state))
	}
	for sec, open := range state {
		if !open {
			t.Errorf("section %q should default to open", sec)
		}
	}
}

func TestToggle_FlipsIndependently(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	docID := uuid.New()

	open, err := s.Toggle(ctx, docID, "summary")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if open {
		t.Error("first toggle should close an open-by-default section")
	}

	state, err := s.Get(ctx, docID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state["summary"] {
		t.Error("summary should be closed")
	}
	if !state["keywords"] {
		t.Error("other sections must be unaffected")
	}
}

func TestSet_ScopedToDocument(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	docA, docB := uuid.New(), uuid.New()

	if err := s.Set(ctx, docA, "transcript", false); err != nil {
		t.Fatalf("set: %v", err)
	}

	stateB, err := s.Get(ctx, docB)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stateB["transcript"] {
		t.Error("state must be scoped per document")
	}
}

func TestSetAll_BulkCollapseAndExpand(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	docID := uuid.New()

	if err := s.SetAll(ctx, docID, false); err != nil {
		t.Fatalf("set all: %v", err)
	}
	state, _ := s.Get(ctx, docID)
	for sec, open := range state {
		if open {
			t.Errorf("section %q should be closed after collapse-all", sec)
		}
	}

	if err := s.SetAll(ctx, docID, true); err != nil {
		t.Fatalf("set all: %v", err)
	}
	state, _ = s.Get(ctx, docID)
	for sec, open := range state {
		if !open {
			t.Errorf("section %q should be open after expand-all", sec)
		}
	}
}

func TestState_SurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()
	docID := uuid.New()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, docID, "weights", false); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	state, err := s2.Get(ctx, docID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state["weights"] {
		t.Error("state should survive reopen")
	}
}
