// Package notesrepo provides access to note storage.
package notesrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luminahq/lumina/sdk/logger"
)

// Set of errors for note operations.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyTitle   = errors.New("note title is required")
)

// Storer defines the data storage interface for Note. All reads and writes
// are scoped to the owning user. Lists come back ordered by last update,
// newest first.
type Storer interface {
	Create(ctx context.Context, userID string, input CreateNote) (Note, error)
	Get(ctx context.Context, noteID string, userID string) (Note, error)
	List(ctx context.Context, userID string) ([]Note, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]Note, error)
	Update(ctx context.Context, noteID string, userID string, input UpdateNote) (Note, error)
	Delete(ctx context.Context, noteID string, userID string) error
}

// Repository provides access to note storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Note repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new note for the user. An empty title is rejected before
// any storage call is issued.
func (r *Repository) Create(ctx context.Context, userID string, input CreateNote) (Note, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Note{}, ErrEmptyTitle
	}

	color, err := ParseColor(input.Color)
	if err != nil {
		return Note{}, err
	}
	input.Color = color

	note, err := r.storer.Create(ctx, userID, input)
	if err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

// Get returns the note with the given id if the user owns it.
func (r *Repository) Get(ctx context.Context, noteID string, userID string) (Note, error) {
	return r.storer.Get(ctx, noteID, userID)
}

// List returns the user's notes ordered by last update, optionally filtered
// by a case-insensitive search over title and content. A note without
// content can still match on its title.
func (r *Repository) List(ctx context.Context, userID string, search string) ([]Note, error) {
	notes, err := r.storer.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return notes, nil
	}

	filtered := make([]Note, 0, len(notes))
	for _, note := range notes {
		if MatchesSearch(note, search) {
			filtered = append(filtered, note)
		}
	}

	return filtered, nil
}

// ListRecent returns the user's most recently updated notes.
func (r *Repository) ListRecent(ctx context.Context, userID string, limit int) ([]Note, error) {
	return r.storer.ListRecent(ctx, userID, limit)
}

// Update replaces the provided fields on the note and bumps its update time.
func (r *Repository) Update(ctx context.Context, noteID string, userID string, input UpdateNote) (Note, error) {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return Note{}, ErrEmptyTitle
		}
	}

	if input.Color != nil {
		color, err := ParseColor(*input.Color)
		if err != nil {
			return Note{}, err
		}
		input.Color = &color
	}

	return r.storer.Update(ctx, noteID, userID, input)
}

// Delete removes the note if the user owns it.
func (r *Repository) Delete(ctx context.Context, noteID string, userID string) error {
	return r.storer.Delete(ctx, noteID, userID)
}

// MatchesSearch reports whether the note matches the search term,
// case-insensitively, on title or content.
func MatchesSearch(note Note, search string) bool {
	term := strings.ToLower(search)

	if strings.Contains(strings.ToLower(note.Title), term) {
		return true
	}

	if note.Content != nil && strings.Contains(strings.ToLower(*note.Content), term) {
		return true
	}

	return false
}
