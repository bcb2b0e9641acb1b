package registrations

import "errors"

// ErrNotFound is returned when no registration exists for a given id.
var ErrNotFound = errors.New("registration not found")

// ErrEmailTaken is returned by Store.Create when the unique constraint on
// normalized email is hit.
var ErrEmailTaken = errors.New("email already registered")

// DuplicateError rejects a create for an email that already has a registration.
type DuplicateError struct {
	ExistingID string
}

func (e *DuplicateError) Error() string {
	return "registration already exists for this email"
}

// InvalidInputError carries the full field error list for a rejected submission.
type InvalidInputError struct {
	Errors []ValidationError
}

func (e *InvalidInputError) Error() string {
	return "validation failed"
}
