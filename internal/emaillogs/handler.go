package emaillogs

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classreg/backend/internal/models"
	"github.com/classreg/backend/pkg/queue"
	"github.com/classreg/backend/pkg/response"
)

// RegistrationLookup resolves a registration id to its record. Returns
// (nil, nil) on a miss.
type RegistrationLookup interface {
	FindByID(ctx context.Context, id string) (*models.Registration, error)
}

// Handler handles email log HTTP endpoints.
type Handler struct {
	store  Store
	regs   RegistrationLookup
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates an email logs handler. The queue may be nil when Redis
// is not configured; resend then reports unavailable.
func NewHandler(store Store, regs RegistrationLookup, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, regs: regs, queue: q, logger: logger}
}

// ListByRegistration handles GET /v1/registration/:registrationId/emails.
func (h *Handler) ListByRegistration(c *gin.Context) {
	id := c.Param("registrationId")
	reg, err := h.regs.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to load email logs")
		return
	}
	if reg == nil {
		response.NotFound(c, "Registration not found")
		return
	}
	logs, err := h.store.ListByRegistration(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("list email logs failed", zap.Error(err), zap.String("registration_id", id))
		response.Internal(c, "Failed to load email logs")
		return
	}
	response.OK(c, gin.H{"success": true, "emails": logs})
}

// ResendRequest is the body for POST /v1/registration/:registrationId/emails/resend.
type ResendRequest struct {
	EmailType string `json:"emailType"`
}

// Resend handles POST /v1/registration/:registrationId/emails/resend.
// Enqueues a delivery job for the worker; the request itself never sends.
func (h *Handler) Resend(c *gin.Context) {
	id := c.Param("registrationId")
	reg, err := h.regs.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to queue resend")
		return
	}
	if reg == nil {
		response.NotFound(c, "Registration not found")
		return
	}
	if h.queue == nil {
		response.ServiceUnavailable(c, "Resend is not available")
		return
	}

	var body ResendRequest
	_ = c.ShouldBindJSON(&body) // body is optional
	emailType := body.EmailType
	if emailType == "" {
		emailType = models.EmailTypeConfirmation
	}

	payload := queue.EmailPayload{
		EmailType:      emailType,
		RegistrationID: reg.ID,
		RecipientEmail: reg.Email,
		Subject:        "Your class registration",
	}
	if err := h.queue.EnqueueEmail(c.Request.Context(), payload); err != nil {
		h.logger.Error("enqueue resend failed", zap.Error(err), zap.String("registration_id", id))
		response.Internal(c, "Failed to queue resend")
		return
	}
	response.OK(c, gin.H{"success": true, "message": "Resend queued"})
}
