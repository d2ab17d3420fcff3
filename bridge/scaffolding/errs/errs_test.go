package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
)

func TestEncodeShape(t *testing.T) {
	err := errs.Newf(errs.Unauthenticated, "Unauthorized")

	data, contentType, encErr := err.Encode()
	if encErr != nil {
		t.Fatalf("encoding error: %v", encErr)
	}
	if contentType != "application/json" {
		t.Errorf("got content type %q, want application/json", contentType)
	}
	if string(data) != `{"error":"Unauthorized"}` {
		t.Errorf("got body %s", data)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errs.Code
		want int
	}{
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.PermissionDenied, http.StatusForbidden},
		{errs.NotFound, http.StatusNotFound},
		{errs.AlreadyExists, http.StatusConflict},
		{errs.Internal, http.StatusInternalServerError},
		{errs.Unavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := errs.Newf(tt.code, "x").HTTPStatus(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	inner := errs.New(errs.NotFound, errors.New("task not found"))
	wrapped := fmt.Errorf("handling request: %w", inner)

	if !errs.IsError(wrapped) {
		t.Fatal("wrapped error should still be recognized")
	}
	if got := errs.GetError(wrapped); got.Code != errs.NotFound {
		t.Errorf("got code %v, want NotFound", got.Code)
	}
}
