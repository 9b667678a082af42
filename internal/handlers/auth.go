package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/dto"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/monitoring"
	"github.com/yukikurage/warbler-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user and logs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username string `json:"username" binding:"required,max=255"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		ImageURL string `json:"image_url" binding:"omitempty,max=255"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	monitoring.RegisterSuccess.Inc()

	if err := saveSessionUser(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCurrentUserDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, ok, err := h.authService.Authenticate(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("error").Inc()
		logrus.WithError(err).Error("Login lookup failed")
		apierrors.InternalError(c, "")
		return
	}
	if !ok {
		monitoring.LoginFailure.WithLabelValues("invalid_credentials").Inc()
		apierrors.InvalidCredentials(c, "Wrong username or password")
		return
	}

	if err := saveSessionUser(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	monitoring.LoginSuccess.Inc()

	c.JSON(http.StatusOK, dto.ToCurrentUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := clearSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrentUserDTO(*user))
}

func saveSessionUser(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

func clearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// respondError maps service errors onto API error responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrMessageTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Message must be at most %d characters", constants.MaxMessageLength))
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrMessageTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateIdentity):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrDuplicateEdge):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidSelfReference):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrSelfLikeForbidden),
		errors.Is(err, services.ErrNotMessageOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Incorrect password")
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrNotFollowing):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoValidSuggestions):
		apierrors.InternalError(c, err.Error())
	default:
		logrus.WithError(err).Error("Request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}
