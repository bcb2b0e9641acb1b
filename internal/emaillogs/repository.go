package emaillogs

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classreg/backend/internal/models"
)

// Store records and lists notification delivery attempts.
type Store interface {
	Insert(ctx context.Context, log *models.EmailLog) error
	ListByRegistration(ctx context.Context, registrationID string) ([]*models.EmailLog, error)
}

// Repository handles email_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email logs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert records a delivery attempt.
func (r *Repository) Insert(ctx context.Context, log *models.EmailLog) error {
	const q = `INSERT INTO email_logs
		(registration_id, email_type, recipient_email, subject, status, sent_at, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q,
		log.RegistrationID, log.EmailType, log.RecipientEmail, log.Subject,
		log.Status, log.SentAt, log.ErrorMessage,
	).Scan(&log.ID, &log.CreatedAt)
}

// ListByRegistration returns email logs for a registration, newest first.
func (r *Repository) ListByRegistration(ctx context.Context, registrationID string) ([]*models.EmailLog, error) {
	const q = `SELECT id, registration_id, email_type, recipient_email, subject, status, sent_at, error_message, created_at
		FROM email_logs
		WHERE registration_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.EmailLog
	for rows.Next() {
		var el models.EmailLog
		var subject, errMsg *string
		if err := rows.Scan(&el.ID, &el.RegistrationID, &el.EmailType, &el.RecipientEmail,
			&subject, &el.Status, &el.SentAt, &errMsg, &el.CreatedAt); err != nil {
			return nil, err
		}
		if subject != nil {
			el.Subject = *subject
		}
		if errMsg != nil {
			el.ErrorMessage = *errMsg
		}
		list = append(list, &el)
	}
	return list, rows.Err()
}
