package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/classreg/backend/config"
	"github.com/classreg/backend/internal/emaillogs"
	"github.com/classreg/backend/internal/models"
)

// Dispatcher issues best-effort confirmation and admin-alert notifications.
// Neither operation ever returns an error; a failed attempt is logged,
// recorded in the email log, and reported as false.
type Dispatcher struct {
	sender Sender
	logs   emaillogs.Store
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(sender Sender, logs emaillogs.Store, cfg config.EmailConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sender: sender, logs: logs, cfg: cfg, logger: logger}
}

// SendConfirmation attempts the registrant confirmation email.
func (d *Dispatcher) SendConfirmation(ctx context.Context, reg *models.Registration) bool {
	subject := "Your class registration is confirmed"
	body := fmt.Sprintf("Hi %s,\n\nYour registration %s for %s is confirmed.\n\n%s",
		reg.FirstName, reg.ID, reg.Schedule, d.cfg.FromName)
	return d.deliver(ctx, models.EmailTypeConfirmation, reg.ID, reg.Email, subject, body)
}

// SendAdminAlert attempts the new-registration alert to the admin channel.
func (d *Dispatcher) SendAdminAlert(ctx context.Context, reg *models.Registration) bool {
	subject := "New class registration"
	body := fmt.Sprintf("Registration %s: %s %s <%s> for %s",
		reg.ID, reg.FirstName, reg.LastName, reg.Email, reg.Schedule)
	return d.deliver(ctx, models.EmailTypeAdminAlert, reg.ID, d.cfg.AdminEmail, subject, body)
}

func (d *Dispatcher) deliver(ctx context.Context, emailType, registrationID, to, subject, body string) bool {
	err := d.sender.Send(ctx, to, subject, body)

	log := &models.EmailLog{
		RegistrationID: registrationID,
		EmailType:      emailType,
		RecipientEmail: to,
		Subject:        subject,
	}
	if err != nil {
		log.Status = models.EmailLogStatusFailed
		log.ErrorMessage = err.Error()
	} else {
		now := time.Now().UTC()
		log.Status = models.EmailLogStatusSent
		log.SentAt = &now
	}
	if d.logs != nil {
		if insErr := d.logs.Insert(ctx, log); insErr != nil {
			d.logger.Warn("record email log failed", zap.Error(insErr),
				zap.String("registration_id", registrationID))
		}
	}

	if err != nil {
		d.logger.Error("notification delivery failed", zap.Error(err),
			zap.String("email_type", emailType),
			zap.String("registration_id", registrationID),
		)
		return false
	}
	d.logger.Info("notification delivered",
		zap.String("email_type", emailType),
		zap.String("registration_id", registrationID),
		zap.String("to", to),
	)
	return true
}
