// Package usersessionspgxstore provides database access for user sessions.
package usersessionspgxstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/luminahq/lumina/core/repositories/usersessionsrepo"
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

// Create inserts a new session.
func (s *Store) Create(ctx context.Context, input usersessionsrepo.CreateUserSession) (usersessionsrepo.UserSession, error) {
	id, err := cryptids.GenerateID()
	if err != nil {
		return usersessionsrepo.UserSession{}, fmt.Errorf("generate id: %w", err)
	}

	query := `INSERT INTO user_sessions (session_id, user_id, token, expires_at)
		VALUES (@session_id, @user_id, @token, @expires_at)
		RETURNING *`

	args := pgx.NamedArgs{
		"session_id": id,
		"user_id":    input.UserID,
		"token":      input.Token,
		"expires_at": input.ExpiresAt,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersessionsrepo.UserSession{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersessionsrepo.UserSession])
	if err != nil {
		return usersessionsrepo.UserSession{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// GetByToken retrieves a session by its bearer token.
func (s *Store) GetByToken(ctx context.Context, token string) (usersessionsrepo.UserSession, error) {
	query := `SELECT session_id, user_id, token, expires_at, created_at
		FROM user_sessions
		WHERE token = @token`

	args := pgx.NamedArgs{
		"token": token,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersessionsrepo.UserSession{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersessionsrepo.UserSession])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersessionsrepo.UserSession{}, usersessionsrepo.ErrSessionNotFound
		}
		return usersessionsrepo.UserSession{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Delete removes a session by id.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM user_sessions WHERE session_id = @session_id`

	args := pgx.NamedArgs{
		"session_id": sessionID,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return usersessionsrepo.ErrSessionNotFound
	}

	return nil
}

// DeleteByToken removes a session by its bearer token.
func (s *Store) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM user_sessions WHERE token = @token`

	args := pgx.NamedArgs{
		"token": token,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return usersessionsrepo.ErrSessionNotFound
	}

	return nil
}

// DeleteForUser removes every session owned by the user.
func (s *Store) DeleteForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM user_sessions WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

// ListExpired returns sessions expiring before the given time.
func (s *Store) ListExpired(ctx context.Context, before time.Time, limit int) ([]usersessionsrepo.UserSession, error) {
	query := `SELECT session_id, user_id, token, expires_at, created_at
		FROM user_sessions
		WHERE expires_at < @before
		ORDER BY expires_at ASC
		LIMIT @limit`

	args := pgx.NamedArgs{
		"before": before,
		"limit":  limit,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersessionsrepo.UserSession])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}
