package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind classifies API failures.
type ErrorKind string

// KindValidation is a malformed or out-of-range request; KindWrongType is a
// well-formed request whose value has the wrong JSON type.
const (
	KindValidation ErrorKind = "VALIDATION_ERROR"
	KindWrongType  ErrorKind = "WRONG_TYPE"
	KindConflict   ErrorKind = "CONFLICT"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindTooLarge   ErrorKind = "TOO_LARGE"
	KindStorage    ErrorKind = "STORAGE_ERROR"
	KindInternal   ErrorKind = "INTERNAL_ERROR"
)

// Error is an API failure with a client-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusFor maps an ErrorKind to its HTTP status code.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest // 400
	case KindWrongType:
		return http.StatusUnprocessableEntity // 422
	case KindConflict:
		return http.StatusConflict // 409
	case KindNotFound:
		return http.StatusNotFound // 404
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge // 413
	default:
		return http.StatusInternalServerError // 500
	}
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func storageError(err error) *Error {
	return &Error{Kind: KindStorage, Message: err.Error(), Err: err}
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, e *Error) {
	writeJSON(w, StatusFor(e.Kind), errorResponse{Error: e.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
