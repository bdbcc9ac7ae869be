package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"huddle-api/config"
	"huddle-api/internal/domain/resource"
	"huddle-api/internal/redis"
	"huddle-api/internal/services"
	huddle_errors "huddle-api/pkg/errors"
	"huddle-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth() *services.AuthService {
	return services.NewAuthService(&config.Config{JWTSecret: "test-secret", JWTExpiryMin: 5})
}

func whoAmI(c *gin.Context) {
	userID, _ := services.UserIDFromContext(c.Request.Context())
	c.String(http.StatusOK, userID)
}

func TestAuthMiddleware(t *testing.T) {
	auth := newAuth()
	token, _, err := auth.IssueAccessToken("u1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), whoAmI)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid", header: "Bearer " + token, status: http.StatusOK, body: "u1"},
		{name: "lowercase scheme", header: "bearer " + token, status: http.StatusOK, body: "u1"},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + token, status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	auth := newAuth()
	token, _, err := auth.IssueAccessToken("u1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", OptionalAuthMiddleware(auth), whoAmI)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "u1", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger.NewNop()))
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(services.NotFound(resource.ProjectKind, "x"))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	r.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"internal error"`)
	assert.NotContains(t, w.Body.String(), "boom")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type fakeLimiter struct {
	result   *redis.RateLimitResult
	err      error
	subjects []string
}

func (f *fakeLimiter) AllowWrite(_ context.Context, subject string) (*redis.RateLimitResult, error) {
	f.subjects = append(f.subjects, subject)
	return f.result, f.err
}

func TestWriteRateLimitMiddleware(t *testing.T) {
	auth := newAuth()
	token, _, err := auth.IssueAccessToken("u1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		limiter *fakeLimiter
		auth    bool
		status  int
		subject string
	}{
		{
			name:    "allowed user",
			limiter: &fakeLimiter{result: &redis.RateLimitResult{Allowed: true, Remaining: 4, Limit: 5, ResetIn: 30 * time.Second}},
			auth:    true,
			status:  http.StatusOK,
			subject: "u1",
		},
		{
			name:    "anonymous falls back to ip",
			limiter: &fakeLimiter{result: &redis.RateLimitResult{Allowed: true, Remaining: 4, Limit: 5}},
			status:  http.StatusOK,
			subject: "192.0.2.1",
		},
		{
			name:    "exceeded",
			limiter: &fakeLimiter{result: &redis.RateLimitResult{Allowed: false, Limit: 5, ResetIn: 10 * time.Second}},
			auth:    true,
			status:  http.StatusTooManyRequests,
			subject: "u1",
		},
		{
			name:    "limiter error lets the write through",
			limiter: &fakeLimiter{err: errors.New("redis down")},
			auth:    true,
			status:  http.StatusOK,
			subject: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/w", OptionalAuthMiddleware(auth), WriteRateLimitMiddleware(tt.limiter, logger.NewNop()), whoAmI)

			req := httptest.NewRequest(http.MethodPost, "/w", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			if tt.auth {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, []string{tt.subject}, tt.limiter.subjects)
			if tt.limiter.result != nil {
				assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
			}
		})
	}
}

func TestRemoveBlanksMiddleware(t *testing.T) {
	r := gin.New()
	r.PATCH("/p", RemoveBlanksMiddleware(), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(raw))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/p", strings.NewReader(`{"project":{"user1":"","user2":"u2"}}`)))
	assert.JSONEq(t, `{"project":{"user2":"u2"}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/p", strings.NewReader(`not json`)))
	assert.Equal(t, "not json", w.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/id", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(logger.RequestIdKey).(string)
		c.String(http.StatusOK, id)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	assert.Len(t, w.Body.String(), 32)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-Id", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://localhost:7165"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:7165", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandler_RateLimitedSentinel(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(nil))
	r.GET("/x", func(c *gin.Context) { _ = c.Error(huddle_errors.ErrRateLimited) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
