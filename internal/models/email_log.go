package models

import (
	"time"

	"github.com/google/uuid"
)

// Email types recorded by the notification dispatcher.
const (
	EmailTypeConfirmation = "registration_confirmation"
	EmailTypeAdminAlert   = "admin_alert"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusSent   = "sent"
	EmailLogStatusFailed = "failed"
)

// EmailLog records a notification delivery attempt for a registration.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	RegistrationID string     `json:"registrationId"`
	EmailType      string     `json:"emailType"`
	RecipientEmail string     `json:"recipientEmail"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
