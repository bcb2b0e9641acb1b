package registrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/classreg/backend/internal/models"
)

// Notifier issues best-effort registration notifications. Implementations
// never return errors; a failed attempt is reported as false.
type Notifier interface {
	SendConfirmation(ctx context.Context, reg *models.Registration) bool
	SendAdminAlert(ctx context.Context, reg *models.Registration) bool
}

// Service orchestrates the registration workflow: validation, duplicate
// check, persistence and post-create notifications.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() (string, error)
}

// NewService creates a registration service.
func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    NewID,
	}
}

// CreateResult is the success response for a created registration.
type CreateResult struct {
	Success               bool   `json:"success"`
	Message               string `json:"message"`
	RegistrationID        string `json:"registrationId"`
	EmailSent             bool   `json:"emailSent"`
	AdminNotificationSent bool   `json:"adminNotificationSent"`
	NextSteps             string `json:"nextSteps"`
}

// ValidationResult is the response for the validate-only operation. Errors is
// omitted entirely when the submission is valid.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// Details is the read-path projection of a registration. It deliberately
// leaves out adminNotificationSent and updatedAt.
type Details struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Schedule  string `json:"schedule"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
	EmailSent bool   `json:"emailSent"`
}

// Create validates a submission, rejects duplicates, persists a new confirmed
// registration and fires both notifications. Validation and duplicate
// failures leave no record behind. Returns *InvalidInputError,
// *DuplicateError, or a wrapped internal error.
func (s *Service) Create(ctx context.Context, req SubmitRequest) (*CreateResult, error) {
	if errs := ValidateSubmission(req); len(errs) > 0 {
		return nil, &InvalidInputError{Errors: errs}
	}

	email := NormalizeEmail(req.Email)
	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("duplicate check failed", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateError{ExistingID: existing.ID}
	}

	id, err := s.newID()
	if err != nil {
		s.logger.Error("id generation failed", zap.Error(err))
		return nil, fmt.Errorf("generate id: %w", err)
	}
	now := s.now().UTC()
	reg := &models.Registration{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Schedule:  req.Schedule,
		Status:    models.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, reg); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Lost the check-then-act race to a concurrent create; report
			// the winner the same way the fast-path check would have.
			winner, ferr := s.store.FindByEmail(ctx, email)
			if ferr != nil || winner == nil {
				return nil, &DuplicateError{}
			}
			return nil, &DuplicateError{ExistingID: winner.ID}
		}
		s.logger.Error("create registration failed", zap.Error(err), zap.String("registration_id", id))
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// Confirmation first, then admin alert. Both best-effort; a false result
	// is recorded on the stored record, never rolled back.
	emailSent := s.notifier.SendConfirmation(ctx, reg)
	adminSent := s.notifier.SendAdminAlert(ctx, reg)
	if err := s.store.UpdateNotificationFlags(ctx, reg.ID, emailSent, adminSent); err != nil {
		s.logger.Error("update notification flags failed", zap.Error(err), zap.String("registration_id", reg.ID))
		return nil, fmt.Errorf("update notification flags: %w", err)
	}
	reg.EmailSent = emailSent
	reg.AdminNotificationSent = adminSent

	s.logger.Info("registration created",
		zap.String("registration_id", reg.ID),
		zap.String("email", reg.Email),
		zap.Bool("email_sent", emailSent),
		zap.Bool("admin_notification_sent", adminSent),
	)
	return &CreateResult{
		Success:               true,
		Message:               "Registration submitted successfully",
		RegistrationID:        reg.ID,
		EmailSent:             emailSent,
		AdminNotificationSent: adminSent,
		NextSteps:             "Check your email for confirmation details",
	}, nil
}

// ValidateOnly runs the same structural and duplicate checks as Create but
// never persists and never notifies. It always returns a result, never an
// error; an internal fault degrades to a general validation failure.
func (s *Service) ValidateOnly(ctx context.Context, req SubmitRequest) *ValidationResult {
	if errs := ValidateSubmission(req); len(errs) > 0 {
		return &ValidationResult{Valid: false, Message: "Validation failed", Errors: errs}
	}
	existing, err := s.store.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		s.logger.Error("validate-only duplicate check failed", zap.Error(err))
		return &ValidationResult{
			Valid:   false,
			Message: "Validation failed",
			Errors: []ValidationError{
				{Field: "general", Message: "An error occurred during validation"},
			},
		}
	}
	if existing != nil {
		return &ValidationResult{
			Valid:   false,
			Message: "Validation failed",
			Errors: []ValidationError{
				{Field: "email", Message: "Email already registered", Code: CodeDuplicateEmail},
			},
		}
	}
	return &ValidationResult{Valid: true, Message: "All fields are valid"}
}

// GetByID returns the read-path projection for a registration, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Details, error) {
	reg, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get registration failed", zap.Error(err), zap.String("registration_id", id))
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if reg == nil {
		return nil, ErrNotFound
	}
	return &Details{
		ID:        reg.ID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Schedule:  reg.Schedule,
		CreatedAt: reg.CreatedAt.UTC().Format(time.RFC3339),
		Status:    reg.Status,
		EmailSent: reg.EmailSent,
	}, nil
}
