package services

import (
	"errors"
	"fmt"
	"net/http"

	"huddle-api/internal/domain/resource"
	huddle_errors "huddle-api/pkg/errors"
)

// NotFound reports that no document of kind has the given id.
func NotFound(kind resource.Kind, id string) error {
	return fmt.Errorf("%w: %s %s: The provided ID doesn't match any documents", huddle_errors.ErrNotFound, kind.Singular, id)
}

// RequireOwnership fails with ErrNotOwner unless userID owns r.
func RequireOwnership(userID string, r resource.Resource) error {
	if userID == "" || userID != r.Owner {
		return fmt.Errorf("%w: The provided token does not match the owner of this document", huddle_errors.ErrNotOwner)
	}
	return nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, huddle_errors.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, huddle_errors.ErrUnauthorized), errors.Is(err, huddle_errors.ErrNotOwner):
		return http.StatusUnauthorized
	case errors.Is(err, huddle_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, huddle_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, huddle_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode is the machine-readable code rendered next to the error message.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, huddle_errors.ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, huddle_errors.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, huddle_errors.ErrNotOwner):
		return "NOT_OWNER"
	case errors.Is(err, huddle_errors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, huddle_errors.ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, huddle_errors.ErrServiceUnavailable):
		return "UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
