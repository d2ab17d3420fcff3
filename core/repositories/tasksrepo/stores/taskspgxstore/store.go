// Package taskspgxstore provides database access for tasks.
package taskspgxstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/luminahq/lumina/core/repositories/tasksrepo"
	"github.com/luminahq/lumina/core/scaffolding/fop"
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

// Create inserts a new task.
func (s *Store) Create(ctx context.Context, userID string, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	id, err := cryptids.GenerateID()
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("generate id: %w", err)
	}

	query := `INSERT INTO tasks (task_id, user_id, title, status, priority)
		VALUES (@task_id, @user_id, @title, @status, @priority)
		RETURNING *`

	args := pgx.NamedArgs{
		"task_id":  id,
		"user_id":  userID,
		"title":    input.Title,
		"status":   tasksrepo.StatusActive,
		"priority": input.Priority,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves a single task owned by the user.
func (s *Store) Get(ctx context.Context, taskID string, userID string) (tasksrepo.Task, error) {
	query := `SELECT task_id, user_id, title, status, priority, created_at
		FROM tasks
		WHERE task_id = @task_id AND user_id = @user_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
		"user_id": userID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, tasksrepo.ErrTaskNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves all tasks owned by the user.
func (s *Store) List(ctx context.Context, userID string, orderBy fop.By) ([]tasksrepo.Task, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT task_id, user_id, title, status, priority, created_at
		FROM tasks
		WHERE user_id = @user_id`)

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "task_id", orderBy.Direction); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// ListActive retrieves the user's most recently created active tasks.
func (s *Store) ListActive(ctx context.Context, userID string, limit int) ([]tasksrepo.Task, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT task_id, user_id, title, status, priority, created_at
		FROM tasks
		WHERE user_id = @user_id AND status = @status
		ORDER BY created_at DESC`)

	args := pgx.NamedArgs{
		"user_id": userID,
		"status":  tasksrepo.StatusActive,
	}
	postgresdb.AddLimitClause(limit, args, &buf)

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Update modifies an existing task owned by the user.
func (s *Store) Update(ctx context.Context, taskID string, userID string, input tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	var fields []string
	data := pgx.NamedArgs{
		"task_id": taskID,
		"user_id": userID,
	}

	if input.Title != nil {
		fields = append(fields, "title = @title")
		data["title"] = *input.Title
	}
	if input.Status != nil {
		fields = append(fields, "status = @status")
		data["status"] = *input.Status
	}
	if input.Priority != nil {
		fields = append(fields, "priority = @priority")
		data["priority"] = *input.Priority
	}

	if len(fields) == 0 {
		return s.Get(ctx, taskID, userID)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE task_id = @task_id AND user_id = @user_id RETURNING *`,
		strings.Join(fields, ", "))

	rows, err := s.pool.Query(ctx, query, data)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, tasksrepo.ErrTaskNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Delete removes a task owned by the user.
func (s *Store) Delete(ctx context.Context, taskID string, userID string) error {
	query := `DELETE FROM tasks WHERE task_id = @task_id AND user_id = @user_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
		"user_id": userID,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return tasksrepo.ErrTaskNotFound
	}

	return nil
}

// Stats returns the user's task counts.
func (s *Store) Stats(ctx context.Context, userID string) (tasksrepo.Stats, error) {
	query := `SELECT
			COUNT(*)::int AS total,
			COUNT(*) FILTER (WHERE status = @status)::int AS completed
		FROM tasks
		WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
		"status":  tasksrepo.StatusCompleted,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Stats{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Stats])
	if err != nil {
		return tasksrepo.Stats{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}
