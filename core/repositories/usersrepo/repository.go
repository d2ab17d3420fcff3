// Package usersrepo provides access to account storage.
package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/luminahq/lumina/sdk/logger"
)

// Set of errors for user operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUniqueEmail  = errors.New("email is not unique")
)

// Storer defines the data storage interface for User.
type Storer interface {
	Create(ctx context.Context, input CreateUser) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, userID string, input UpdateUser) error
	Delete(ctx context.Context, userID string) error
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new user to the system.
func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	user, err := r.storer.Create(ctx, input)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	r.log.InfoContext(ctx, "user created", "user_id", user.UserID)
	return user, nil
}

// GetByID returns the user with the given id.
func (r *Repository) GetByID(ctx context.Context, userID string) (User, error) {
	return r.storer.GetByID(ctx, userID)
}

// GetByEmail returns the user with the given email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.storer.GetByEmail(ctx, email)
}

// Update modifies an existing user.
func (r *Repository) Update(ctx context.Context, userID string, input UpdateUser) error {
	return r.storer.Update(ctx, userID, input)
}

// Delete removes a user and, through the database, all owned records.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	return r.storer.Delete(ctx, userID)
}
