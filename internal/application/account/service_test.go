package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/pkg/logger"
)

func newService() (*Service, *memUsers, *memSessions) {
	users := &memUsers{byName: map[string]domain.User{}}
	sessions := &memSessions{}
	return &Service{
		Users:    users,
		Hasher:   plainHasher{},
		Sessions: sessions,
		Logger:   logger.Discard(),
		Now:      func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}, users, sessions
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"blank username", "   ", "secret1", ErrInvalidUsername},
		{"guest reserved", domain.GuestUser, "secret1", ErrInvalidUsername},
		{"short password", "alice", "12345", ErrPasswordTooShort},
		{"ok", "  alice ", "123456", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newService()
			user, err := svc.Register(context.Background(), tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if user.Username != "alice" {
				t.Fatalf("expected trimmed username, got %q", user.Username)
			}
			if users.byName["alice"].PasswordHash != "hashed:123456" {
				t.Fatalf("password must be stored hashed, got %q", users.byName["alice"].PasswordHash)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "secret2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginLogout(t *testing.T) {
	svc, _, sessions := newService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "alice", "secret1")

	if _, err := svc.Login(ctx, "alice", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if got := svc.CurrentUsername(); got != domain.GuestUser {
		t.Fatalf("expected guest before login, got %q", got)
	}

	sess, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Token == "" || sessions.sess.Username != "alice" {
		t.Fatalf("expected persisted session with token, got %+v", sessions.sess)
	}
	if got := svc.CurrentUsername(); got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Current(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn after logout, got %v", err)
	}
}

func TestProfileRequiresLogin(t *testing.T) {
	svc, _, _ := newService()
	if _, err := svc.Profile(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := svc.UpdateProfile(context.Background(), domain.Profile{}); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	_, _ = svc.Register(ctx, "alice", "secret1")
	_, _ = svc.Login(ctx, "alice", "secret1")

	if err := svc.UpdateProfile(ctx, domain.Profile{Email: " alice@example.com ", FirstName: "Alice"}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	user, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Profile.Email != "alice@example.com" || user.Profile.FirstName != "Alice" {
		t.Fatalf("unexpected profile %+v", user.Profile)
	}
}

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type memUsers struct {
	byName map[string]domain.User
}

func (m *memUsers) Create(_ context.Context, u domain.User) error {
	if _, ok := m.byName[u.Username]; ok {
		return domain.ErrUserExists
	}
	m.byName[u.Username] = u
	return nil
}

func (m *memUsers) FindByUsername(_ context.Context, name string) (domain.User, error) {
	u, ok := m.byName[name]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, name string, p domain.Profile) error {
	u, ok := m.byName[name]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Profile = p
	m.byName[name] = u
	return nil
}

type memSessions struct {
	sess domain.Session
}

func (m *memSessions) Load() (domain.Session, error) { return m.sess, nil }
func (m *memSessions) Save(s domain.Session) error   { m.sess = s; return nil }
func (m *memSessions) Clear() error                  { m.sess = domain.Session{}; return nil }
