// Package userspgxstore provides database access for users.
package userspgxstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
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

// Create inserts a new user.
func (s *Store) Create(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	id, err := cryptids.GenerateID()
	if err != nil {
		return usersrepo.User{}, fmt.Errorf("generate id: %w", err)
	}

	query := `INSERT INTO users (user_id, email, full_name, password_hash)
		VALUES (@user_id, @email, @full_name, @password_hash)
		RETURNING *`

	args := pgx.NamedArgs{
		"user_id":       id,
		"email":         strings.ToLower(input.Email),
		"full_name":     input.FullName,
		"password_hash": input.PasswordHash,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(postgresdb.HandlePgError(err), postgresdb.ErrDBDuplicatedEntry) {
			return usersrepo.User{}, usersrepo.ErrUniqueEmail
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// GetByID retrieves a single user by ID.
func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	query := `SELECT user_id, email, full_name, password_hash, created_at, updated_at
		FROM users
		WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	return s.getOne(ctx, query, args)
}

// GetByEmail retrieves a single user by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT user_id, email, full_name, password_hash, created_at, updated_at
		FROM users
		WHERE email = @email`

	args := pgx.NamedArgs{
		"email": strings.ToLower(email),
	}

	return s.getOne(ctx, query, args)
}

func (s *Store) getOne(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, usersrepo.ErrUserNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Update modifies an existing user.
func (s *Store) Update(ctx context.Context, userID string, input usersrepo.UpdateUser) error {
	var fields []string
	data := pgx.NamedArgs{
		"user_id": userID,
	}

	if input.FullName != nil {
		fields = append(fields, "full_name = @full_name")
		data["full_name"] = *input.FullName
	}
	if input.PasswordHash != nil {
		fields = append(fields, "password_hash = @password_hash")
		data["password_hash"] = *input.PasswordHash
	}

	// Always bump updated_at.
	if input.UpdatedAt != nil {
		data["updated_at"] = *input.UpdatedAt
	} else {
		data["updated_at"] = time.Now()
	}
	fields = append(fields, "updated_at = @updated_at")

	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = @user_id`, strings.Join(fields, ", "))

	result, err := s.pool.Exec(ctx, query, data)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return usersrepo.ErrUserNotFound
	}

	return nil
}

// Delete removes a user.
func (s *Store) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return usersrepo.ErrUserNotFound
	}

	return nil
}
