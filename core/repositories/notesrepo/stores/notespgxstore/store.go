// Package notespgxstore provides database access for notes.
package notespgxstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/luminahq/lumina/core/repositories/notesrepo"
	"github.com/luminahq/lumina/infrastructure/postgresdb"
	"github.com/luminahq/lumina/sdk/cryptids"
	"github.com/luminahq/lumina/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Create inserts a new note.
func (s *Store) Create(ctx context.Context, userID string, input notesrepo.CreateNote) (notesrepo.Note, error) {
	id, err := cryptids.GenerateID()
	if err != nil {
		return notesrepo.Note{}, fmt.Errorf("generate id: %w", err)
	}

	query := `INSERT INTO notes (note_id, user_id, title, content, color)
		VALUES (@note_id, @user_id, @title, @content, @color)
		RETURNING *`

	args := pgx.NamedArgs{
		"note_id": id,
		"user_id": userID,
		"title":   input.Title,
		"content": input.Content,
		"color":   input.Color,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return notesrepo.Note{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[notesrepo.Note])
	if err != nil {
		return notesrepo.Note{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves a single note owned by the user.
func (s *Store) Get(ctx context.Context, noteID string, userID string) (notesrepo.Note, error) {
	query := `SELECT note_id, user_id, title, content, color, created_at, updated_at
		FROM notes
		WHERE note_id = @note_id AND user_id = @user_id`

	args := pgx.NamedArgs{
		"note_id": noteID,
		"user_id": userID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return notesrepo.Note{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[notesrepo.Note])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notesrepo.Note{}, notesrepo.ErrNoteNotFound
		}
		return notesrepo.Note{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves all notes owned by the user, most recently updated first.
func (s *Store) List(ctx context.Context, userID string) ([]notesrepo.Note, error) {
	query := `SELECT note_id, user_id, title, content, color, created_at, updated_at
		FROM notes
		WHERE user_id = @user_id
		ORDER BY updated_at DESC, note_id DESC`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[notesrepo.Note])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// ListRecent retrieves the user's most recently updated notes.
func (s *Store) ListRecent(ctx context.Context, userID string, limit int) ([]notesrepo.Note, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT note_id, user_id, title, content, color, created_at, updated_at
		FROM notes
		WHERE user_id = @user_id
		ORDER BY updated_at DESC, note_id DESC`)

	args := pgx.NamedArgs{
		"user_id": userID,
	}
	postgresdb.AddLimitClause(limit, args, &buf)

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[notesrepo.Note])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Update modifies an existing note owned by the user and bumps updated_at.
func (s *Store) Update(ctx context.Context, noteID string, userID string, input notesrepo.UpdateNote) (notesrepo.Note, error) {
	var fields []string
	data := pgx.NamedArgs{
		"note_id": noteID,
		"user_id": userID,
	}

	if input.Title != nil {
		fields = append(fields, "title = @title")
		data["title"] = *input.Title
	}
	if input.Content != nil {
		fields = append(fields, "content = @content")
		data["content"] = *input.Content
	}
	if input.Color != nil {
		fields = append(fields, "color = @color")
		data["color"] = *input.Color
	}

	if len(fields) == 0 {
		return s.Get(ctx, noteID, userID)
	}

	fields = append(fields, "updated_at = @updated_at")
	data["updated_at"] = time.Now()

	query := fmt.Sprintf(`UPDATE notes SET %s WHERE note_id = @note_id AND user_id = @user_id RETURNING *`,
		strings.Join(fields, ", "))

	rows, err := s.pool.Query(ctx, query, data)
	if err != nil {
		return notesrepo.Note{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[notesrepo.Note])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notesrepo.Note{}, notesrepo.ErrNoteNotFound
		}
		return notesrepo.Note{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Delete removes a note owned by the user.
func (s *Store) Delete(ctx context.Context, noteID string, userID string) error {
	query := `DELETE FROM notes WHERE note_id = @note_id AND user_id = @user_id`

	args := pgx.NamedArgs{
		"note_id": noteID,
		"user_id": userID,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return notesrepo.ErrNoteNotFound
	}

	return nil
}
