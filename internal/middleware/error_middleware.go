package middleware

import (
	"huddle-api/internal/services"
	"huddle-api/internal/transport/httpdto"
	"huddle-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := services.HTTPStatus(err)
		if l != nil {
			if status >= 500 {
				l.Errorf("request error: %s", err.Error())
			} else {
				l.Debugf("request rejected: %s", err.Error())
			}
		}
		message := err.Error()
		if status >= 500 {
			message = "internal error"
		}
		c.JSON(status, httpdto.NewErrorResponse(message, services.ErrorCode(err)))
	}
}
