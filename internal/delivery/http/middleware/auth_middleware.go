package middleware

import (
	"net/http"
	"strings"

	"devconnector-backend/internal/delivery/http/response"
	"devconnector-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards private routes. It extracts the bearer token, verifies
// it, and attaches the resolved user id to the request context. The legacy
// x-auth-token header is accepted as a fallback for older clients.
func AuthMiddleware(tokens domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			tokenString = c.GetHeader("x-auth-token")
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "No token, authorization denied", nil)
			c.Abort()
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Token is not valid", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Next()
	}
}
