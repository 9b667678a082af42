package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/dto"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/services"
)

// TimelineHandler serves the home timeline.
type TimelineHandler struct {
	feedService *services.FeedService
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(feedService *services.FeedService) *TimelineHandler {
	return &TimelineHandler{
		feedService: feedService,
	}
}

// Home returns messages by the current user and everyone they follow, annotated with their likes.
func (h *TimelineHandler) Home(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messages, err := h.feedService.HomeTimeline(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	liked, err := h.feedService.LikedMessageIDs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(messages, liked))
}
