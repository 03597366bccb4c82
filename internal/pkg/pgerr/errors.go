// Package pgerr holds the error values rendered to API clients. Every error
// that reaches the fiber error handler as a *APIError is reported with its
// own status code and code; anything else becomes an INTERNAL_ERROR.
package pgerr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUnauthorized is returned when the request carries no or an unknown api key.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "missing or invalid api key")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e APIError) Msg(format string, parts ...any) *APIError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e APIError) WithExtras(extras Extras) *APIError {
	e.Extras = &extras
	return &e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is reports whether target carries the same error code, so that derived
// errors still match their sentinel with errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

func NewInvalidViolations(violations any) *APIError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

// NewValidation reports a request that is well-formed but breaks a domain rule.
func NewValidation(message string) *APIError {
	return ErrInvalidReq.Msg("%s", message)
}

// NewEntityNotFound reports that the entity of the given type with the given id
// does not exist.
func NewEntityNotFound(entity string, id any) *APIError {
	return ErrNotFound.
		Msg("entity with the type %s and the id %v not found", entity, id).
		WithExtras(Extras{
			"entity": entity,
			"id":     id,
		})
}

// As extracts the *APIError from err, if any.
func As(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
