package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/dto"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/monitoring"
	"github.com/yukikurage/warbler-api/internal/services"
)

type MessageHandler struct {
	messageService      *services.MessageService
	relationshipService *services.RelationshipService
	feedService         *services.FeedService
}

func NewMessageHandler(messageService *services.MessageService, relationshipService *services.RelationshipService, feedService *services.FeedService) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		relationshipService: relationshipService,
		feedService:         feedService,
	}
}

// CreateMessage posts a message as the current user
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateMessageRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	message, err := h.messageService.CreateMessage(userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	monitoring.MessagesPosted.Inc()

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message, false))
}

// GetMessage returns a message
// Message is already loaded with its author by RequireMessage middleware
func (h *MessageHandler) GetMessage(c *gin.Context) {
	message, ok := middleware.GetMessage(c)
	if !ok {
		apierrors.InternalError(c, "Message not found in context")
		return
	}

	liked := false
	if viewerID, exists := middleware.GetUserID(c); exists {
		ids, err := h.feedService.LikedMessageIDs(viewerID)
		if err != nil {
			respondError(c, err)
			return
		}
		_, liked = ids[message.ID]
	}

	c.JSON(http.StatusOK, dto.ToMessageDTO(message, liked))
}

// DeleteMessage deletes a message written by the current user
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	message, ok := middleware.GetMessage(c)
	if !ok {
		apierrors.InternalError(c, "Message not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.messageService.DeleteMessage(message.ID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message deleted successfully",
	})
}

// ToggleLike likes or unlikes a message for the current user
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	message, ok := middleware.GetMessage(c)
	if !ok {
		apierrors.InternalError(c, "Message not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	liked, err := h.relationshipService.ToggleLike(userID, message.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	monitoring.LikesToggled.WithLabelValues(state).Inc()

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
	})
}

// SuggestMessages drafts messages about a topic
func (h *MessageHandler) SuggestMessages(c *gin.Context) {
	type SuggestRequest struct {
		Topic string `json:"topic" binding:"required,max=500"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.messageService.SuggestMessages(c.Request.Context(), req.Topic)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": drafts,
	})
}
