package middleware

import (
	"devconnector-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags each request with a unique id, echoed in the response
// envelope and header for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
