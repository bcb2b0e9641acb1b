package schedule

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classreg/backend/pkg/response"
)

const defaultLimit = 50

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Handler handles schedule HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a schedule handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /v1/schedule with optional date and limit query params.
func (h *Handler) List(c *gin.Context) {
	date := c.Query("date")
	if date != "" && !datePattern.MatchString(date) {
		response.ValidationFailed(c, []response.FieldError{
			{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
		})
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			response.ValidationFailed(c, []response.FieldError{
				{Field: "limit", Message: "Limit must be between 1 and 100"},
			})
			return
		}
		limit = n
	}

	response.OK(c, gin.H{
		"success":   true,
		"schedules": h.svc.Available(date, limit),
	})
}
