package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/infrastructure/storage"
	"github.com/doeshing/baseconv/internal/ports"
)

// SQLiteStore persists conversion history in the shared SQLite database.
type SQLiteStore struct {
	db            *sql.DB
	path          string
	mu            sync.Mutex
	retentionDays int
}

// NewSQLiteStore wraps an opened database. path is reported by Path.
func NewSQLiteStore(db *sql.DB, path string, retentionDays int) *SQLiteStore {
	return &SQLiteStore{db: db, path: path, retentionDays: retentionDays}
}

// Save inserts a new record.
func (s *SQLiteStore) Save(ctx context.Context, record domain.ConversionRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO conversions
		(username, input_value, input_base, output_value, output_base, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.Username,
		record.InputValue,
		int(record.InputBase),
		record.OutputValue,
		int(record.OutputBase),
		record.Timestamp.UTC().Format(storage.TimeLayout),
	)
	if err != nil {
		return err
	}
	if s.retentionDays > 0 {
		return s.pruneLocked(ctx, s.retentionDays)
	}
	return nil
}

// Records returns the user's conversions, newest first. An empty username
// returns every user's records; a non-positive limit returns all of them.
func (s *SQLiteStore) Records(ctx context.Context, username string, limit int) ([]domain.ConversionRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, username, input_value, input_base, output_value, output_base, created_at FROM conversions")
	var args []interface{}
	if username != "" {
		builder.WriteString(" WHERE username = ?")
		args = append(args, username)
	}
	builder.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.ConversionRecord
	for rows.Next() {
		var rec domain.ConversionRecord
		var ts string
		var inBase, outBase int
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.InputValue, &inBase, &rec.OutputValue, &outBase, &ts); err != nil {
			return nil, err
		}
		if t, err := time.Parse(storage.TimeLayout, ts); err == nil {
			rec.Timestamp = t
		}
		rec.InputBase = domain.Radix(inBase)
		rec.OutputBase = domain.Radix(outBase)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes the user's history entries.
func (s *SQLiteStore) Clear(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM conversions WHERE username = ?", username)
	return err
}

// ExportJSON writes the user's conversions to a jsonl file.
func (s *SQLiteStore) ExportJSON(ctx context.Context, username, dest string) error {
	records, err := s.Records(ctx, username, 0)
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// PruneOlderThan removes entries older than N days.
func (s *SQLiteStore) PruneOlderThan(ctx context.Context, days int) error {
	if days <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(ctx, days)
}

func (s *SQLiteStore) pruneLocked(ctx context.Context, days int) error {
	cutoff := time.Now().AddDate(0, 0, -days).UTC().Format(storage.TimeLayout)
	_, err := s.db.ExecContext(ctx, "DELETE FROM conversions WHERE created_at < ?", cutoff)
	return err
}

// SetRetentionDays updates retention policy.
func (s *SQLiteStore) SetRetentionDays(days int) {
	s.mu.Lock()
	s.retentionDays = days
	s.mu.Unlock()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
