package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is a single field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorBody is the generic failure envelope.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK sends a 200 JSON response with the given body as-is.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 JSON response with the given body as-is.
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// ValidationFailed sends 400 with the full field error list.
func ValidationFailed(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// BadRequest sends 400 with a message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Success: false, Message: msg})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Success: false, Message: msg})
}

// NotFound sends 404.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorBody{Success: false, Message: msg})
}

// DuplicateRegistration sends 409 with the existing registration reference.
func DuplicateRegistration(c *gin.Context, existingID string) {
	c.JSON(http.StatusConflict, gin.H{
		"success":                false,
		"message":                "Registration already exists for this email",
		"errorCode":              "DUPLICATE_REGISTRATION",
		"existingRegistrationId": existingID,
	})
}

// ServiceUnavailable sends 503.
func ServiceUnavailable(c *gin.Context, msg string) {
	c.JSON(http.StatusServiceUnavailable, ErrorBody{Success: false, Message: msg})
}

// Internal sends 500 with a generic message, never internals.
func Internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Success: false, Message: msg})
}
