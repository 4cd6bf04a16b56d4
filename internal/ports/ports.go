// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The conversion engine in internal/converter is pure and needs none of
// these. They describe what the application services around it consume:
// configuration, the per-user conversion history, accounts and sessions,
// notes, and the terminal helpers the CLI plugs in.
package ports

import (
	"context"

	"github.com/doeshing/baseconv/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.baseconv/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HistoryRepository is the persistence sink for successful conversions.
// Records come back most-recent-first; a non-positive limit returns all.
type HistoryRepository interface {
	Save(ctx context.Context, record domain.ConversionRecord) error
	Records(ctx context.Context, username string, limit int) ([]domain.ConversionRecord, error)
	Clear(ctx context.Context, username string) error
	PruneOlderThan(ctx context.Context, days int) error
	ExportJSON(ctx context.Context, username, dest string) error
	Path() string
}

// UserRepository stores registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateProfile(ctx context.Context, username string, profile domain.Profile) error
}

// PasswordHasher hides the password hashing scheme from the account service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// SessionStore persists which user is logged in on this machine.
type SessionStore interface {
	Load() (domain.Session, error)
	Save(domain.Session) error
	Clear() error
}

// NoteRepository stores notes per owner.
type NoteRepository interface {
	List(ctx context.Context, owner string) ([]domain.Note, error)
	Get(ctx context.Context, owner, id string) (domain.Note, error)
	Save(ctx context.Context, note domain.Note) error
	Delete(ctx context.Context, owner, id string) error
}

// Clipboard copies conversion results for pasting elsewhere.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// ConfirmationPrompter asks the user before destructive actions such as
// clearing history or logging out.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
