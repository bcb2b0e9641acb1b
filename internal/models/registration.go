package models

import "time"

// Registration statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Registration is a class sign-up keyed by normalized (lower-cased) email.
type Registration struct {
	ID                    string    `json:"id"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	Email                 string    `json:"email"`
	Schedule              string    `json:"schedule"`
	Status                string    `json:"status"`
	EmailSent             bool      `json:"emailSent"`
	AdminNotificationSent bool      `json:"adminNotificationSent"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
