package services

import (
	"context"
	"time"

	"huddle-api/config"
	huddle_errors "huddle-api/pkg/errors"
	"huddle-api/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies bearer tokens. Identity management lives elsewhere;
// this service only signs and checks HS256 access tokens carrying the user id as subject.
type AuthService struct {
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type AccessClaims struct {
	jwt.RegisteredClaims
}

// UserID is the authenticated principal.
func (c AccessClaims) UserID() string {
	return c.Subject
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, huddle_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, huddle_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, huddle_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return AccessClaims{}, huddle_errors.ErrUnauthorized
	}

	return *claims, nil
}

// IssueAccessToken signs a token for userID. Returns the token and its lifetime in seconds.
func (s *AuthService) IssueAccessToken(userID string) (string, int64, error) {
	if userID == "" {
		return "", 0, huddle_errors.ErrInvalidInput
	}
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

type ctxKey string

var userIDKey ctxKey = "user_id"

// WithUserContext attaches the authenticated principal to ctx, also exposing it to the logger.
func WithUserContext(ctx context.Context, userID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, logger.UserIdKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
