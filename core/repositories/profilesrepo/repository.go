// Package profilesrepo provides access to the per-account preferences row.
package profilesrepo

import (
	"context"
	"errors"

	"github.com/luminahq/lumina/sdk/logger"
)

// ErrProfileNotFound is returned when the account has no preferences row.
var ErrProfileNotFound = errors.New("profile not found")

// Storer defines the data storage interface for Profile.
type Storer interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, userID string, input UpsertProfile) (Profile, error)
}

// Repository provides access to profile storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Profile repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Get returns the account's preferences row.
func (r *Repository) Get(ctx context.Context, userID string) (Profile, error) {
	return r.storer.Get(ctx, userID)
}

// Upsert inserts or updates the account's preferences row.
func (r *Repository) Upsert(ctx context.Context, userID string, input UpsertProfile) (Profile, error) {
	return r.storer.Upsert(ctx, userID, input)
}
