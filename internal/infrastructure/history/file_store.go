package history

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

// FileStore appends history records to a jsonl file. It backs history when
// the SQLite database cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a history store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements ports.HistoryRepository.
func (f *FileStore) Save(_ context.Context, record domain.ConversionRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Records loads the user's entries, newest first (best-effort: malformed
// lines are skipped).
func (f *FileStore) Records(_ context.Context, username string, limit int) ([]domain.ConversionRecord, error) {
	f.mu.Lock()
	all, err := f.readAll()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var records []domain.ConversionRecord
	for i := len(all) - 1; i >= 0; i-- {
		if username != "" && all[i].Username != username {
			continue
		}
		records = append(records, all[i])
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	return records, nil
}

// Clear removes the user's entries, keeping everyone else's.
func (f *FileStore) Clear(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rewrite(func(rec domain.ConversionRecord) bool {
		return rec.Username != username
	})
}

// ExportJSON writes the user's entries, newest first, to dest as jsonl.
func (f *FileStore) ExportJSON(ctx context.Context, username, dest string) error {
	records, err := f.Records(ctx, username, 0)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	return os.WriteFile(dest, buf.Bytes(), 0o644)
}

// PruneOlderThan removes entries older than N days.
func (f *FileStore) PruneOlderThan(_ context.Context, days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rewrite(func(rec domain.ConversionRecord) bool {
		return !rec.Timestamp.Before(cutoff)
	})
}

func (f *FileStore) readAll() ([]domain.ConversionRecord, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	var records []domain.ConversionRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec domain.ConversionRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, scanner.Err()
}

func (f *FileStore) rewrite(keep func(domain.ConversionRecord) bool) error {
	records, err := f.readAll()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		data, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(f.path, buf.Bytes(), 0o644)
}

var _ ports.HistoryRepository = (*FileStore)(nil)
