// Package notes manages a user's free-form notes.
package notes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

// ErrTitleRequired rejects notes without a title.
var ErrTitleRequired = errors.New("note title must not be empty")

// Service implements note CRUD and search for one owner at a time.
type Service struct {
	Repo   ports.NoteRepository
	Logger ports.Logger
	Now    func() time.Time
}

// NoteUpdate carries the fields an edit changes; nil leaves a field as is.
type NoteUpdate struct {
	Title   *string
	Content *string
}

func (s *Service) ready() error {
	if s.Repo == nil {
		return errors.New("notes.Service dependencies not satisfied")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Add creates a note for owner.
func (s *Service) Add(ctx context.Context, owner, title, content string) (domain.Note, error) {
	if err := s.ready(); err != nil {
		return domain.Note{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Note{}, ErrTitleRequired
	}
	now := s.now()
	note := domain.Note{
		ID:        uuid.NewString(),
		Owner:     owner,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Save(ctx, note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// Edit applies update to an existing note.
func (s *Service) Edit(ctx context.Context, owner, id string, update NoteUpdate) (domain.Note, error) {
	if err := s.ready(); err != nil {
		return domain.Note{}, err
	}
	note, err := s.Repo.Get(ctx, owner, id)
	if err != nil {
		return domain.Note{}, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return domain.Note{}, ErrTitleRequired
		}
		note.Title = title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	note.UpdatedAt = s.now()
	if err := s.Repo.Save(ctx, note); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, owner, id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Debug("note deleted", map[string]interface{}{"owner": owner, "id": id})
	}
	return nil
}

// List returns owner's notes, most recently updated first.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Note, error) {
	return s.Search(ctx, owner, "")
}

// Search returns owner's notes whose title or content contains query,
// ignoring case, most recently updated first.
func (s *Service) Search(ctx context.Context, owner, query string) ([]domain.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all, err := s.Repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	matches := make([]domain.Note, 0, len(all))
	for _, n := range all {
		if n.Matches(query) {
			matches = append(matches, n)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].UpdatedAt.After(matches[j].UpdatedAt)
	})
	return matches, nil
}
