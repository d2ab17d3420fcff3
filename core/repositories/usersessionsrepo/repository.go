// Package usersessionsrepo provides access to bearer session storage.
package usersessionsrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/luminahq/lumina/sdk/logger"
)

// Set of errors for session operations.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Storer defines the data storage interface for UserSession.
type Storer interface {
	Create(ctx context.Context, input CreateUserSession) (UserSession, error)
	GetByToken(ctx context.Context, token string) (UserSession, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID string) error
	ListExpired(ctx context.Context, before time.Time, limit int) ([]UserSession, error)
}

// Repository provides access to session storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new UserSession repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create issues a new bearer session for the user with the given lifetime.
func (r *Repository) Create(ctx context.Context, userID string, ttl time.Duration) (UserSession, error) {
	session, err := r.storer.Create(ctx, CreateUserSession{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return UserSession{}, fmt.Errorf("create session: %w", err)
	}

	r.log.InfoContext(ctx, "session created", "user_id", userID, "session_id", session.SessionID)
	return session, nil
}

// Authenticate resolves a bearer token to the owning user id. Expired
// sessions are rejected; deletion is left to the purge worker.
func (r *Repository) Authenticate(ctx context.Context, token string) (string, error) {
	session, err := r.storer.GetByToken(ctx, token)
	if err != nil {
		return "", err
	}

	if time.Now().After(session.ExpiresAt) {
		return "", ErrSessionExpired
	}

	return session.UserID, nil
}

// Revoke removes the session for the given bearer token.
func (r *Repository) Revoke(ctx context.Context, token string) error {
	return r.storer.DeleteByToken(ctx, token)
}

// RevokeForUser removes every session owned by the user.
func (r *Repository) RevokeForUser(ctx context.Context, userID string) error {
	return r.storer.DeleteForUser(ctx, userID)
}

// ListExpired returns sessions whose expiry is before the given time.
func (r *Repository) ListExpired(ctx context.Context, before time.Time, limit int) ([]UserSession, error) {
	return r.storer.ListExpired(ctx, before, limit)
}

// Delete removes a session row by id.
func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	return r.storer.Delete(ctx, sessionID)
}
