package registrations

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classreg/backend/pkg/response"
)

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Create handles POST /v1/registration.
func (h *Handler) Create(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		var invalid *InvalidInputError
		var dup *DuplicateError
		switch {
		case errors.As(err, &invalid):
			response.ValidationFailed(c, fieldErrors(invalid.Errors))
		case errors.As(err, &dup):
			response.DuplicateRegistration(c, dup.ExistingID)
		default:
			response.Internal(c, "Failed to create registration")
		}
		return
	}
	response.Created(c, result)
}

// Validate handles POST /v1/registration/validate. Always 200.
func (h *Handler) Validate(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	response.OK(c, h.svc.ValidateOnly(c.Request.Context(), req))
}

// GetByID handles GET /v1/registration/:registrationId.
func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("registrationId")
	details, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Registration not found")
			return
		}
		response.Internal(c, "Failed to retrieve registration")
		return
	}
	response.OK(c, details)
}

func fieldErrors(errs []ValidationError) []response.FieldError {
	out := make([]response.FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, response.FieldError{Field: e.Field, Message: e.Message, Code: e.Code})
	}
	return out
}
