package notes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/baseconv/internal/domain"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), FileName))
}

func note(owner, id, title string) domain.Note {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return domain.Note{ID: id, Owner: owner, Title: title, Content: "body of " + title, CreatedAt: at, UpdatedAt: at}
}

func TestListEmpty(t *testing.T) {
	got, err := newStore(t).List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no notes, got %+v", got)
	}
}

func TestSaveUpsertsPerOwner(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first := note("alice", "1", "hex table")
	other := note("bob", "1", "bob's note")
	for _, n := range []domain.Note{first, other} {
		if err := store.Save(ctx, n); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	first.Title = "hex cheatsheet"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if diff := cmp.Diff([]domain.Note{first}, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	bob, _ := store.Get(ctx, "bob", "1")
	if bob.Title != "bob's note" {
		t.Fatalf("bob's note should be untouched, got %+v", bob)
	}
}

func TestGetAndDeleteMissing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	_ = store.Save(ctx, note("alice", "1", "a"))

	if _, err := store.Get(ctx, "bob", "1"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound for other owner, got %v", err)
	}
	if err := store.Delete(ctx, "alice", "2"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "alice", "1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := store.List(ctx, "alice"); len(got) != 0 {
		t.Fatalf("expected note deleted, got %+v", got)
	}
}

func TestConcurrentSaves(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Save(ctx, note("alice", fmt.Sprint(i), "n")); err != nil {
				t.Errorf("Save error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := store.List(ctx, "alice")
	if len(got) != 20 {
		t.Fatalf("expected 20 notes, got %d", len(got))
	}
}
