package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	// Graph rule violations, such as following yourself
	ErrCodeInvalidOperation = "INVALID_OPERATION"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

func respond(c *gin.Context, status int, code, message, fallback string) {
	if message == "" {
		message = fallback
	}
	RespondWithError(c, status, NewAPIError(code, message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, "Authentication required")
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, message, "Invalid username or password")
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrCodeForbidden, message, "Access denied")
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeNotFound, message, "Resource not found")
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, "Invalid request")
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// InvalidOperation sends a 400 response for a request that breaks a relationship rule
func InvalidOperation(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidOperation, message, "Operation not allowed")
}

// AlreadyExists sends a 409 response for an identity collision
func AlreadyExists(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeAlreadyExists, message, "Resource already exists")
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeConflict, message, "Resource conflict")
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, message, "Internal server error")
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message, "Service temporarily unavailable")
}
