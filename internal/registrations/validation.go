package registrations

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// SubmitRequest is the body for POST /v1/registration.
type SubmitRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	ConfirmEmail string `json:"confirmEmail"`
	Schedule     string `json:"schedule"`
}

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validation error codes.
const (
	CodeRequired       = "REQUIRED"
	CodeTooSmall       = "TOO_SMALL"
	CodeTooBig         = "TOO_BIG"
	CodeInvalidString  = "INVALID_STRING"
	CodeEmailMismatch  = "EMAIL_MISMATCH"
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateSubmission checks every field constraint and then the cross-field
// email match, collecting all failures before returning. An empty slice means
// the submission is valid. No I/O.
func ValidateSubmission(req SubmitRequest) []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateName("firstName", "First name", req.FirstName)...)
	errs = append(errs, validateName("lastName", "Last name", req.LastName)...)
	errs = append(errs, validateEmail("email", "Email", req.Email)...)
	errs = append(errs, validateEmail("confirmEmail", "Confirm email", req.ConfirmEmail)...)
	errs = append(errs, validateSchedule(req.Schedule)...)

	if req.Email != "" && req.ConfirmEmail != "" && !EmailsMatch(req.Email, req.ConfirmEmail) {
		errs = append(errs, ValidationError{
			Field:   "confirmEmail",
			Message: "Email addresses do not match",
			Code:    CodeEmailMismatch,
		})
	}
	return errs
}

// EmailsMatch compares two email addresses case-insensitively.
func EmailsMatch(email, confirm string) bool {
	return strings.EqualFold(email, confirm)
}

// NormalizeEmail lower-cases an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

func validateName(field, label, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{Field: field, Message: label + " is required", Code: CodeRequired}}
	}
	var errs []ValidationError
	n := utf8.RuneCountInString(value)
	if n < 2 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at least 2 characters", label),
			Code:    CodeTooSmall,
		})
	}
	if n > 50 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at most 50 characters", label),
			Code:    CodeTooBig,
		})
	}
	if !namePattern.MatchString(value) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must contain letters and spaces only", label),
			Code:    CodeInvalidString,
		})
	}
	return errs
}

func validateEmail(field, label, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{Field: field, Message: label + " is required", Code: CodeRequired}}
	}
	var errs []ValidationError
	if !emailPattern.MatchString(value) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "Invalid email format",
			Code:    CodeInvalidString,
		})
	}
	if utf8.RuneCountInString(value) > 255 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at most 255 characters", label),
			Code:    CodeTooBig,
		})
	}
	return errs
}

func validateSchedule(value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{Field: "schedule", Message: "Schedule is required", Code: CodeRequired}}
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return []ValidationError{{
			Field:   "schedule",
			Message: "Schedule must be a valid ISO 8601 datetime",
			Code:    CodeInvalidString,
		}}
	}
	return nil
}
