// Package account registers users, manages the login session and edits
// profiles.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

var (
	ErrInvalidUsername    = errors.New("username must not be empty")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", domain.MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// Service implements the account lifecycle.
type Service struct {
	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Sessions ports.SessionStore
	Logger   ports.Logger
	Now      func() time.Time
}

func (s *Service) ready() error {
	if s.Users == nil || s.Hasher == nil || s.Sessions == nil || s.Logger == nil {
		return errors.New("account.Service dependencies not satisfied")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates an account. The username is trimmed; the password is
// stored only as a hash.
func (s *Service) Register(ctx context.Context, username, password string) (domain.User, error) {
	if err := s.ready(); err != nil {
		return domain.User{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" || username == domain.GuestUser {
		return domain.User{}, ErrInvalidUsername
	}
	if len(password) < domain.MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, PasswordHash: hash, CreatedAt: s.now()}
	if err := s.Users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	s.Logger.Info("user registered", map[string]interface{}{"user": username})
	return user, nil
}

// Login checks the credentials and persists a new session.
func (s *Service) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if err := s.ready(); err != nil {
		return domain.Session{}, err
	}
	username = strings.TrimSpace(username)
	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		s.Logger.Debug("password mismatch", map[string]interface{}{"user": username})
		return domain.Session{}, ErrInvalidCredentials
	}
	sess := domain.Session{
		Username:   user.Username,
		Token:      uuid.NewString(),
		LoggedInAt: s.now(),
	}
	if err := s.Sessions.Save(sess); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Logout forgets the current session.
func (s *Service) Logout() error {
	if s.Sessions == nil {
		return errors.New("session store unavailable")
	}
	return s.Sessions.Clear()
}

// Current returns the active session or ErrNotLoggedIn. It needs only the
// session store, so it works when the account database is unavailable.
func (s *Service) Current() (domain.Session, error) {
	if s.Sessions == nil {
		return domain.Session{}, errors.New("session store unavailable")
	}
	sess, err := s.Sessions.Load()
	if err != nil {
		return domain.Session{}, err
	}
	if !sess.Valid() {
		return domain.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

// CurrentUsername names the logged-in user, falling back to the guest user.
// Session read errors are logged and treated as logged out.
func (s *Service) CurrentUsername() string {
	sess, err := s.Current()
	if err != nil {
		if !errors.Is(err, ErrNotLoggedIn) && s.Logger != nil {
			s.Logger.Warn("session unreadable", map[string]interface{}{"error": err.Error()})
		}
		return domain.GuestUser
	}
	return sess.Username
}

// Profile loads the logged-in user's account.
func (s *Service) Profile(ctx context.Context) (domain.User, error) {
	if err := s.ready(); err != nil {
		return domain.User{}, err
	}
	sess, err := s.Current()
	if err != nil {
		return domain.User{}, err
	}
	return s.Users.FindByUsername(ctx, sess.Username)
}

// UpdateProfile saves new profile details for the logged-in user.
func (s *Service) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	if err := s.ready(); err != nil {
		return err
	}
	sess, err := s.Current()
	if err != nil {
		return err
	}
	profile.Email = strings.TrimSpace(profile.Email)
	profile.FirstName = strings.TrimSpace(profile.FirstName)
	if err := s.Users.UpdateProfile(ctx, sess.Username, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
