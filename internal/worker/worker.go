package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/classreg/backend/internal/emaillogs"
	"github.com/classreg/backend/internal/models"
	"github.com/classreg/backend/internal/notify"
	"github.com/classreg/backend/internal/registrations"
	"github.com/classreg/backend/pkg/queue"
)

// EmailProcessor processes queued email delivery jobs: load the registration,
// send through the configured sender, record the attempt, update flags.
type EmailProcessor struct {
	store  registrations.Store
	sender notify.Sender
	logs   emaillogs.Store
	queue  *queue.Queue
	logger *zap.Logger
}

// NewEmailProcessor creates an email delivery processor.
func NewEmailProcessor(store registrations.Store, sender notify.Sender, logs emaillogs.Store, q *queue.Queue, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{store: store, sender: sender, logs: logs, queue: q, logger: logger}
}

// Process executes one email delivery job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	reg, err := p.store.FindByID(ctx, payload.RegistrationID)
	if err != nil {
		return fmt.Errorf("load registration: %w", err)
	}
	if reg == nil {
		return fmt.Errorf("registration not found: %s", payload.RegistrationID)
	}

	to := payload.RecipientEmail
	if to == "" {
		to = reg.Email
	}
	body := fmt.Sprintf("Hi %s,\n\nYour registration %s for %s is confirmed.",
		reg.FirstName, reg.ID, reg.Schedule)
	sendErr := p.sender.Send(ctx, to, payload.Subject, body)

	log := &models.EmailLog{
		RegistrationID: reg.ID,
		EmailType:      payload.EmailType,
		RecipientEmail: to,
		Subject:        payload.Subject,
	}
	if sendErr != nil {
		log.Status = models.EmailLogStatusFailed
		log.ErrorMessage = sendErr.Error()
	} else {
		now := time.Now().UTC()
		log.Status = models.EmailLogStatusSent
		log.SentAt = &now
	}
	if err := p.logs.Insert(ctx, log); err != nil {
		p.logger.Warn("record email log failed", zap.Error(err), zap.String("registration_id", reg.ID))
	}
	if sendErr != nil {
		return fmt.Errorf("send email: %w", sendErr)
	}

	if payload.EmailType == models.EmailTypeConfirmation && !reg.EmailSent {
		if err := p.store.UpdateNotificationFlags(ctx, reg.ID, true, reg.AdminNotificationSent); err != nil {
			p.logger.Warn("update email_sent flag failed", zap.Error(err), zap.String("registration_id", reg.ID))
		}
	}

	p.logger.Info("email job completed",
		zap.String("job_id", job.ID),
		zap.String("registration_id", reg.ID),
		zap.String("email_type", payload.EmailType),
	)
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
