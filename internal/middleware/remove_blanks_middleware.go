package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"huddle-api/internal/sanitize"

	"github.com/gin-gonic/gin"
)

// RemoveBlanksMiddleware strips empty-string fields from the objects of a JSON body
// before the handler decodes it. Bodies that are not JSON objects pass through untouched.
func RemoveBlanksMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(nil))
			c.Next()
			return
		}

		var body map[string]any
		if err := json.Unmarshal(raw, &body); err == nil && body != nil {
			sanitize.RemoveBlanks(body)
			if cleaned, err := json.Marshal(body); err == nil {
				raw = cleaned
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		c.Request.ContentLength = int64(len(raw))
		c.Next()
	}
}
