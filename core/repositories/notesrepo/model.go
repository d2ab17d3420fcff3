package notesrepo

import (
	"fmt"
	"time"
)

// Set of note colors. The first is the default swatch.
const (
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorPink   = "pink"
	ColorPurple = "purple"
)

// Note is a user-owned note. Content is optional.
type Note struct {
	NoteID    string    `db:"note_id" json:"noteId"`
	UserID    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Content   *string   `db:"content" json:"content"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateNote contains fields for creating a new note.
type CreateNote struct {
	Title   string
	Content *string
	Color   string
}

// UpdateNote contains fields for updating an existing note.
// All fields are optional (pointers) to support partial updates.
type UpdateNote struct {
	Title   *string
	Content *string
	Color   *string
}

// ParseColor validates a note color value. An empty value defaults to the
// first swatch.
func ParseColor(value string) (string, error) {
	switch value {
	case "":
		return ColorYellow, nil
	case ColorYellow, ColorGreen, ColorBlue, ColorPink, ColorPurple:
		return value, nil
	}
	return "", fmt.Errorf("unknown note color: %s", value)
}
