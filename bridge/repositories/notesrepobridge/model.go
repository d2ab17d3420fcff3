package notesrepobridge

import (
	"errors"
	"strings"

	"github.com/luminahq/lumina/core/repositories/notesrepo"
)

// CreateNoteInput is the request model for note creation.
type CreateNoteInput struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
	Color   string  `json:"color"`
}

// Validate checks the create input.
func (i CreateNoteInput) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return errors.New("title is required")
	}
	if _, err := notesrepo.ParseColor(i.Color); err != nil {
		return err
	}
	return nil
}

// UpdateNoteInput is the request model for note updates. Nil fields are
// left unchanged.
type UpdateNoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Color   *string `json:"color"`
}

// Validate checks the update input.
func (i UpdateNoteInput) Validate() error {
	if i.Title != nil && strings.TrimSpace(*i.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if i.Color != nil {
		if _, err := notesrepo.ParseColor(*i.Color); err != nil {
			return err
		}
	}
	return nil
}
