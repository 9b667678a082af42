package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/dto"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/monitoring"
	"github.com/yukikurage/warbler-api/internal/services"
)

// UserHandler serves profiles and the follow graph.
type UserHandler struct {
	authService         *services.AuthService
	relationshipService *services.RelationshipService
	feedService         *services.FeedService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, relationshipService *services.RelationshipService, feedService *services.FeedService) *UserHandler {
	return &UserHandler{
		authService:         authService,
		relationshipService: relationshipService,
		feedService:         feedService,
	}
}

// SearchUsers lists users, filtered by the q query parameter when present
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.feedService.SearchUsers(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// GetUser returns a profile with the user's latest messages
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	profile, err := h.feedService.Profile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	messages, err := h.feedService.UserTimeline(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.ProfileDTO{
		UserDTO:        dto.ToUserDTO(profile.User),
		HeaderImageURL: profile.User.HeaderImageURL,
		Bio:            profile.User.Bio,
		Location:       profile.User.Location,
		MessageCount:   profile.MessageCount,
		FollowerCount:  profile.FollowerCount,
		FollowingCount: profile.FollowingCount,
		LikeCount:      profile.LikeCount,
	}

	var liked map[uint64]struct{}
	if viewerID, exists := middleware.GetUserID(c); exists {
		if liked, err = h.feedService.LikedMessageIDs(viewerID); err != nil {
			respondError(c, err)
			return
		}
		if response.IsFollowing, err = h.relationshipService.IsFollowing(viewerID, userID); err != nil {
			respondError(c, err)
			return
		}
		if response.IsFollowedBy, err = h.relationshipService.IsFollowedBy(viewerID, userID); err != nil {
			respondError(c, err)
			return
		}
	}
	response.Messages = dto.ToMessageDTOs(messages, liked)

	c.JSON(http.StatusOK, response)
}

// ListFollowing lists the users a user follows
func (h *UserHandler) ListFollowing(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	users, err := h.relationshipService.ListFollowing(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// ListFollowers lists the users following a user
func (h *UserHandler) ListFollowers(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	users, err := h.relationshipService.ListFollowers(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// Follow makes the current user follow the user in the path
func (h *UserHandler) Follow(c *gin.Context) {
	viewerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	if err := h.relationshipService.Follow(viewerID, targetID); err != nil {
		respondError(c, err)
		return
	}
	monitoring.FollowsCreated.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"following": true,
	})
}

// Unfollow removes the current user's follow of the user in the path
func (h *UserHandler) Unfollow(c *gin.Context) {
	viewerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	if err := h.relationshipService.Unfollow(viewerID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following": false,
	})
}

// UpdateProfile edits the current user's profile after checking their password
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Username       string `json:"username" binding:"required,max=255"`
		Email          string `json:"email" binding:"required,email"`
		ImageURL       string `json:"image_url" binding:"omitempty,max=255"`
		HeaderImageURL string `json:"header_image_url" binding:"omitempty,max=255"`
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		Password       string `json:"password" binding:"required"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
		Password:       req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentUserDTO(*user))
}

// DeleteAccount deletes the current user and logs them out
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.DeleteUser(userID); err != nil {
		respondError(c, err)
		return
	}

	if err := clearSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
	})
}

// ListLikes lists the messages the current user likes
func (h *UserHandler) ListLikes(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messages, err := h.feedService.LikedMessages(userID)
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

func parseUserIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return id, true
}
