package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrDuplicateKey is returned by stores when a unique index rejects a write.
// The unique indexes are the authoritative defense against races; callers
// classify this error instead of retrying.
var ErrDuplicateKey = errors.New("duplicate key")

// Error is a business error with an HTTP status the handler layer maps
// directly. Anything that is not a *Error surfaces as a generic 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewValidation(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Status: fiber.StatusForbidden, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Status: fiber.StatusConflict, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: message}
}

// AsError unwraps err into a business error if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
