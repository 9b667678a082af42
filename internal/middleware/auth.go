package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/constants"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := sessionUserID(c)
		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth copies the session user ID into the context when present
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := sessionUserID(c); userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}

func sessionUserID(c *gin.Context) interface{} {
	return sessions.Default(c).Get(constants.ContextKeyUserID)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
