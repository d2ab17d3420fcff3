// Package tasksrepo provides access to task storage.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luminahq/lumina/core/scaffolding/fop"
	"github.com/luminahq/lumina/sdk/logger"
)

// Set of errors for task operations.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrEmptyTitle   = errors.New("task title is required")
)

// DefaultOrderBy lists tasks newest first.
var DefaultOrderBy = fop.NewBy("created_at", fop.DESC)

// OrderByFields maps API order names to table columns.
var OrderByFields = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

// Storer defines the data storage interface for Task. All reads and writes
// are scoped to the owning user.
type Storer interface {
	Create(ctx context.Context, userID string, input CreateTask) (Task, error)
	Get(ctx context.Context, taskID string, userID string) (Task, error)
	List(ctx context.Context, userID string, orderBy fop.By) ([]Task, error)
	ListActive(ctx context.Context, userID string, limit int) ([]Task, error)
	Update(ctx context.Context, taskID string, userID string, input UpdateTask) (Task, error)
	Delete(ctx context.Context, taskID string, userID string) error
	Stats(ctx context.Context, userID string) (Stats, error)
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new task for the user. The title is required and the
// priority defaults to medium when absent.
func (r *Repository) Create(ctx context.Context, userID string, input CreateTask) (Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return Task{}, ErrEmptyTitle
	}

	priority, err := ParsePriority(input.Priority)
	if err != nil {
		return Task{}, err
	}
	input.Priority = priority

	task, err := r.storer.Create(ctx, userID, input)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Get returns the task with the given id if the user owns it.
func (r *Repository) Get(ctx context.Context, taskID string, userID string) (Task, error) {
	return r.storer.Get(ctx, taskID, userID)
}

// List returns all of the user's tasks in the given order.
func (r *Repository) List(ctx context.Context, userID string, orderBy fop.By) ([]Task, error) {
	return r.storer.List(ctx, userID, orderBy)
}

// ListActive returns the user's most recent active tasks.
func (r *Repository) ListActive(ctx context.Context, userID string, limit int) ([]Task, error) {
	return r.storer.ListActive(ctx, userID, limit)
}

// Update replaces the provided fields on the task.
func (r *Repository) Update(ctx context.Context, taskID string, userID string, input UpdateTask) (Task, error) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return Task{}, ErrEmptyTitle
		}
		input.Title = &title
	}

	if input.Status != nil {
		status, err := ParseStatus(*input.Status)
		if err != nil {
			return Task{}, err
		}
		input.Status = &status
	}

	if input.Priority != nil {
		priority, err := ParsePriority(*input.Priority)
		if err != nil {
			return Task{}, err
		}
		input.Priority = &priority
	}

	return r.storer.Update(ctx, taskID, userID, input)
}

// Delete removes the task if the user owns it.
func (r *Repository) Delete(ctx context.Context, taskID string, userID string) error {
	return r.storer.Delete(ctx, taskID, userID)
}

// Stats returns the user's task counts.
func (r *Repository) Stats(ctx context.Context, userID string) (Stats, error) {
	return r.storer.Stats(ctx, userID)
}
