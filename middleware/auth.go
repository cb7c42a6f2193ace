package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/services"
	"github.com/dailyudhari/udhari-backend/utils"
)

const userIDKey = "userID"

// Auth returns a middleware that validates the bearer token and stores the
// authenticated user ID in the request context.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.HandleError(c, utils.NewUnauthorizedError("authorization token required"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by the Auth middleware
func UserID(c *gin.Context) int64 {
	if id, exists := c.Get(userIDKey); exists {
		if userID, ok := id.(int64); ok {
			return userID
		}
	}
	return 0
}
