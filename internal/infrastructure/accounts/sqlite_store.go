package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/infrastructure/storage"
	"github.com/doeshing/baseconv/internal/ports"
)

// SQLiteStore keeps registered users in the shared SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts user, failing with domain.ErrUserExists on a duplicate name.
func (s *SQLiteStore) Create(ctx context.Context, user domain.User) (err error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE username = ?", user.Username).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return domain.ErrUserExists
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password_hash, email, first_name, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.Profile.Email,
		user.Profile.FirstName,
		user.CreatedAt.UTC().Format(storage.TimeLayout),
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// FindByUsername loads a user or returns domain.ErrUserNotFound.
func (s *SQLiteStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	var created string
	err := s.db.QueryRowContext(ctx,
		"SELECT username, password_hash, email, first_name, created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.Username, &user.PasswordHash, &user.Profile.Email, &user.Profile.FirstName, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	if t, err := time.Parse(storage.TimeLayout, created); err == nil {
		user.CreatedAt = t
	}
	return user, nil
}

// UpdateProfile replaces the user's profile fields.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, username string, profile domain.Profile) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET email = ?, first_name = ? WHERE username = ?",
		profile.Email, profile.FirstName, username,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

var _ ports.UserRepository = (*SQLiteStore)(nil)
