package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"huddle-api/config"
	huddle_errors "huddle-api/pkg/errors"
	"huddle-api/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(secret string) *AuthService {
	return NewAuthService(&config.Config{JWTSecret: secret, JWTExpiryMin: 15})
}

func TestAuthService_IssueAndParse(t *testing.T) {
	svc := newAuthService("secret")

	token, expiresIn, err := svc.IssueAccessToken("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(15*60), expiresIn)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
}

func TestAuthService_ParseRejects(t *testing.T) {
	svc := newAuthService("secret")
	other, _, err := newAuthService("other").IssueAccessToken("u1")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	expiredToken, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{})
	noSubjectToken, err := noSubject.SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}})
	unsignedToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": other,
		"expired":      expiredToken,
		"no subject":   noSubjectToken,
		"alg none":     unsignedToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseAccessToken(token)
			assert.True(t, errors.Is(err, huddle_errors.ErrUnauthorized))
		})
	}
}

func TestAuthService_IssueRequiresUser(t *testing.T) {
	_, _, err := newAuthService("secret").IssueAccessToken("")
	assert.True(t, errors.Is(err, huddle_errors.ErrInvalidInput))
}

func TestUserContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUserContext(context.Background(), "u1")
	userID, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "u1", ctx.Value(logger.UserIdKey))
}
