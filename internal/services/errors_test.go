package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"huddle-api/internal/domain/resource"
	huddle_errors "huddle-api/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestRequireOwnership(t *testing.T) {
	r := resource.Resource{Owner: "u1"}

	assert.NoError(t, RequireOwnership("u1", r))
	assert.True(t, errors.Is(RequireOwnership("u2", r), huddle_errors.ErrNotOwner))
	assert.True(t, errors.Is(RequireOwnership("", r), huddle_errors.ErrNotOwner))
}

func TestNotFound(t *testing.T) {
	err := NotFound(resource.ChatroomKind, "abc")

	assert.True(t, errors.Is(err, huddle_errors.ErrNotFound))
	assert.Contains(t, err.Error(), "chatroom abc")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{err: NotFound(resource.ProjectKind, "x"), want: http.StatusNotFound, code: "NOT_FOUND"},
		{err: RequireOwnership("u2", resource.Resource{Owner: "u1"}), want: http.StatusUnauthorized, code: "NOT_OWNER"},
		{err: huddle_errors.ErrUnauthorized, want: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{err: fmt.Errorf("%w: user1 required", huddle_errors.ErrInvalidInput), want: http.StatusUnprocessableEntity, code: "INVALID_INPUT"},
		{err: huddle_errors.ErrRateLimited, want: http.StatusTooManyRequests, code: "RATE_LIMITED"},
		{err: huddle_errors.ErrServiceUnavailable, want: http.StatusServiceUnavailable, code: "UNAVAILABLE"},
		{err: errors.New("boom"), want: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
			assert.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}
}
