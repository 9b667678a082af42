package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/database"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/models"
	"gorm.io/gorm"
)

// ContextKeyMessage holds the message loaded by RequireMessage
const ContextKeyMessage = "message"

// RequireMessage loads the message named by the :id parameter with its author
func RequireMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid message ID")
			c.Abort()
			return
		}

		var message models.Message
		if err := database.GetDB().Preload("User").First(&message, messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Message not found")
			} else {
				apierrors.InternalError(c, "Failed to load message")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyMessage, message)
		c.Next()
	}
}

// RequireMessageOwner allows only the author of the loaded message through
func RequireMessageOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		message, ok := GetMessage(c)
		if !ok {
			apierrors.InternalError(c, "Message not found in context")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if message.UserID != userID {
			apierrors.Forbidden(c, "Only the author can modify this message")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetMessage retrieves the message loaded by RequireMessage
func GetMessage(c *gin.Context) (models.Message, bool) {
	value, exists := c.Get(ContextKeyMessage)
	if !exists {
		return models.Message{}, false
	}
	message, ok := value.(models.Message)
	return message, ok
}
