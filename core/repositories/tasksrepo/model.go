package tasksrepo

import (
	"fmt"
	"math"
	"time"
)

// Set of task statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Set of task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a user-owned todo item.
type Task struct {
	TaskID    string    `db:"task_id" json:"taskId"`
	UserID    string    `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Status    string    `db:"status" json:"status"`
	Priority  string    `db:"priority" json:"priority"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CreateTask contains fields for creating a new task.
type CreateTask struct {
	Title    string
	Priority string
}

// UpdateTask contains fields for updating an existing task.
// All fields are optional (pointers) to support partial updates.
type UpdateTask struct {
	Title    *string
	Status   *string
	Priority *string
}

// Stats aggregates a user's task counts.
type Stats struct {
	Total     int `db:"total" json:"total"`
	Completed int `db:"completed" json:"completed"`
}

// CompletionPercentage returns the rounded completed/total ratio as a
// percentage. A user with no tasks is at 0, not a division by zero.
func (s Stats) CompletionPercentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
}

// ParseStatus validates a task status value.
func ParseStatus(value string) (string, error) {
	switch value {
	case StatusActive, StatusCompleted:
		return value, nil
	}
	return "", fmt.Errorf("unknown task status: %s", value)
}

// ParsePriority validates a task priority value. An empty value defaults
// to medium.
func ParsePriority(value string) (string, error) {
	switch value {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return value, nil
	}
	return "", fmt.Errorf("unknown task priority: %s", value)
}
