package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhive-be/internal/jwt"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID"
	ContextEmail  = "userEmail"
)

// AuthMiddleware verifies the bearer token and stores the principal's
// identity on the request context
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "No authentication token provided",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated principal's id from the request context
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
