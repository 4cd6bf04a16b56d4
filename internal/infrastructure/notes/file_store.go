// Package notes stores user notes in a JSON document guarded by a file lock,
// so two baseconv processes editing notes at once do not lose writes.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

// FileName is the notes document inside the data directory.
const FileName = "notes.json"

const lockFileSuffix = ".lock"

// FileStore implements ports.NoteRepository on a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore creates a store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + lockFileSuffix),
	}
}

// Path returns the notes file location.
func (s *FileStore) Path() string {
	return s.path
}

// List returns every note owned by owner in file order.
func (s *FileStore) List(_ context.Context, owner string) ([]domain.Note, error) {
	var out []domain.Note
	err := s.withLock(false, func(all []domain.Note) ([]domain.Note, error) {
		for _, n := range all {
			if n.Owner == owner {
				out = append(out, n)
			}
		}
		return nil, nil
	})
	return out, err
}

// Get returns one note or domain.ErrNoteNotFound.
func (s *FileStore) Get(_ context.Context, owner, id string) (domain.Note, error) {
	var found domain.Note
	err := s.withLock(false, func(all []domain.Note) ([]domain.Note, error) {
		for _, n := range all {
			if n.Owner == owner && n.ID == id {
				found = n
				return nil, nil
			}
		}
		return nil, domain.ErrNoteNotFound
	})
	return found, err
}

// Save inserts note or replaces the note with the same owner and ID.
func (s *FileStore) Save(_ context.Context, note domain.Note) error {
	return s.withLock(true, func(all []domain.Note) ([]domain.Note, error) {
		for i, n := range all {
			if n.Owner == note.Owner && n.ID == note.ID {
				all[i] = note
				return all, nil
			}
		}
		return append(all, note), nil
	})
}

// Delete removes a note or returns domain.ErrNoteNotFound.
func (s *FileStore) Delete(_ context.Context, owner, id string) error {
	return s.withLock(true, func(all []domain.Note) ([]domain.Note, error) {
		for i, n := range all {
			if n.Owner == owner && n.ID == id {
				return append(all[:i], all[i+1:]...), nil
			}
		}
		return nil, domain.ErrNoteNotFound
	})
}

// withLock loads the document under both the in-process mutex and the file
// lock. When write is set, the slice returned by fn replaces the document.
func (s *FileStore) withLock(write bool, fn func([]domain.Note) ([]domain.Note, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", s.path, err)
	}
	defer s.lock.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	updated, err := fn(all)
	if err != nil || !write {
		return err
	}
	return s.write(updated)
}

func (s *FileStore) read() ([]domain.Note, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var all []domain.Note
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return all, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (s *FileStore) write(all []domain.Note) error {
	if all == nil {
		all = []domain.Note{}
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".notes-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(domain.SecureFilePermissions); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

var _ ports.NoteRepository = (*FileStore)(nil)
