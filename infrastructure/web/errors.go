package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is a minimal error payload for failures that happen inside
// the framework itself, before the app error handling gets a chance to run.
type ErrorResponse struct {
	Error  string `json:"error"`
	status int
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg, status: http.StatusInternalServerError}
}

func NewErrorWithStatus(msg string, status int) ErrorResponse {
	return ErrorResponse{Error: msg, status: status}
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func (e ErrorResponse) HTTPStatus() int {
	return e.status
}
