package api

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standardized error response.
//
// All API errors are returned in this format to provide consistent
// error handling for clients.
type ErrorResponse struct {
	// Error is the error code (e.g., "not_found").
	Error string `json:"error"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// RequestID is the unique request ID for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// SuccessResponse represents a standardized success response.
type SuccessResponse struct {
	// Data contains the response payload.
	Data interface{} `json:"data,omitempty"`

	// Message is an optional success message.
	Message string `json:"message,omitempty"`
}

// respondError sends a standardized error response.
func respondError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestID: GetRequestID(c),
	})
}

// respondSuccess sends a standardized success response with data.
func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Data: data,
	})
}

// respondSuccessWithMessage sends a standardized success response with a message.
func respondSuccessWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
	})
}
