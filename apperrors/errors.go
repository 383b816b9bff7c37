// Package apperrors defines the typed failure vocabulary shared by the
// engines and mapped to HTTP statuses at the handler boundary.
package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindInvalidState
	KindCapacityExceeded
	KindFormatMismatch
	KindDuplicateRegistration
	KindUnauthorized
)

// Error carries a kind for transport mapping and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to the status code the transport layer
// should respond with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict, KindDuplicateRegistration:
		return fiber.StatusConflict
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindInvalidState, KindCapacityExceeded, KindFormatMismatch:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error          { return New(KindNotFound, message) }
func Conflict(message string) *Error          { return New(KindConflict, message) }
func Forbidden(message string) *Error         { return New(KindForbidden, message) }
func InvalidState(message string) *Error      { return New(KindInvalidState, message) }
func CapacityExceeded(message string) *Error  { return New(KindCapacityExceeded, message) }
func FormatMismatch(message string) *Error    { return New(KindFormatMismatch, message) }
func DuplicateRegistration(message string) *Error {
	return New(KindDuplicateRegistration, message)
}
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// KindOf extracts the kind from err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
