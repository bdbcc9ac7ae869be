package middleware

import (
	"net/http"
	"strings"

	"huddle-api/internal/services"
	"huddle-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// TokenParser resolves a bearer token to its claims.
type TokenParser interface {
	ParseAccessToken(token string) (services.AccessClaims, error)
}

// AuthMiddleware rejects the request with 401 unless it carries a valid bearer token.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parser.ParseAccessToken(extractBearer(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), claims.UserID())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the principal when a valid token is present and never rejects.
func OptionalAuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parser.ParseAccessToken(extractBearer(c)); err == nil {
			ctx := services.WithUserContext(c.Request.Context(), claims.UserID())
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
