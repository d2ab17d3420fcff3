package tasksrepobridge

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/luminahq/lumina/core/repositories/tasksrepo"
)

// CreateTaskInput is the request model for task creation.
type CreateTaskInput struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// Validate checks the create input.
func (i CreateTaskInput) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return errors.New("title is required")
	}
	if _, err := tasksrepo.ParsePriority(i.Priority); err != nil {
		return err
	}
	return nil
}

// UpdateTaskInput is the request model for task updates. Nil fields are
// left unchanged.
type UpdateTaskInput struct {
	Title    *string `json:"title"`
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

// Validate checks the update input.
func (i UpdateTaskInput) Validate() error {
	if i.Status != nil {
		if _, err := tasksrepo.ParseStatus(*i.Status); err != nil {
			return err
		}
	}
	if i.Priority != nil {
		if _, err := tasksrepo.ParsePriority(*i.Priority); err != nil {
			return err
		}
	}
	return nil
}

// StatsResponse carries task counts plus the derived completion ratio.
type StatsResponse struct {
	Total                int `json:"total"`
	Completed            int `json:"completed"`
	CompletionPercentage int `json:"completionPercentage"`
}

// Encode implements the encoder interface.
func (s StatsResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}
