package errs

import "net/http"

// Code represents an error classification.
type Code int

// Set of error codes used across the bridge layer.
const (
	OK Code = iota
	InvalidArgument
	NotFound
	AlreadyExists
	Unauthenticated
	PermissionDenied
	FailedPrecondition
	Unavailable
	Internal
	InternalOnlyLog
)

var codeNames = map[Code]string{
	OK:                 "ok",
	InvalidArgument:    "invalid_argument",
	NotFound:           "not_found",
	AlreadyExists:      "already_exists",
	Unauthenticated:    "unauthenticated",
	PermissionDenied:   "permission_denied",
	FailedPrecondition: "failed_precondition",
	Unavailable:        "unavailable",
	Internal:           "internal",
	InternalOnlyLog:    "internal",
}

// String returns the string representation of the code.
func (c Code) String() string {
	return codeNames[c]
}

var httpStatus = map[Code]int{
	OK:                 http.StatusOK,
	InvalidArgument:    http.StatusBadRequest,
	NotFound:           http.StatusNotFound,
	AlreadyExists:      http.StatusConflict,
	Unauthenticated:    http.StatusUnauthorized,
	PermissionDenied:   http.StatusForbidden,
	FailedPrecondition: http.StatusUnprocessableEntity,
	Unavailable:        http.StatusServiceUnavailable,
	Internal:           http.StatusInternalServerError,
	InternalOnlyLog:    http.StatusInternalServerError,
}
