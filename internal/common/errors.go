package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateIdentity  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("admin access required")
	ErrNotFound           = errors.New("requested resource not found")
	ErrInternalServer     = errors.New("internal server error")
)

// Kinds reported to clients next to the message.
const (
	KindValidation         = "validation_error"
	KindDuplicateIdentity  = "duplicate_identity"
	KindInvalidCredentials = "invalid_credentials"
	KindUnauthenticated    = "unauthenticated"
	KindForbidden          = "forbidden"
	KindNotFound           = "not_found"
	KindInternal           = "internal"
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateIdentity):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// KindFromError returns the refusal kind for err.
func KindFromError(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrDuplicateIdentity):
		return KindDuplicateIdentity
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	}
	return KindInternal
}

// PublicMessage returns the text that may be shown to a client for err.
// Validation errors carry the detail added by the caller; every other kind
// is reduced to its sentinel message so wrapped internals never leak.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrDuplicateIdentity):
		return ErrDuplicateIdentity.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return ErrInvalidCredentials.Error()
	case errors.Is(err, ErrUnauthenticated):
		return ErrUnauthenticated.Error()
	case errors.Is(err, ErrForbidden):
		return ErrForbidden.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	}
	return ErrInternalServer.Error()
}

// Validationf builds an ErrValidation with a client-facing detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
