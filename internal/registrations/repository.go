package registrations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classreg/backend/internal/models"
)

const uniqueViolation = "23505"

const registrationColumns = `id, first_name, last_name, email, schedule, status,
	email_sent, admin_notification_sent, created_at, updated_at`

// Repository is the PostgreSQL-backed registration store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail returns the registration for a normalized email, or (nil, nil).
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.pool.QueryRow(ctx, q, email))
}

// FindByID returns the registration with the exact id, or (nil, nil).
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

// Create inserts a registration. The unique index on LOWER(email) closes the
// duplicate-check race; a conflict maps to ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, reg *models.Registration) error {
	const q = `INSERT INTO registrations
		(id, first_name, last_name, email, schedule, status, email_sent, admin_notification_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		reg.ID, reg.FirstName, reg.LastName, reg.Email, reg.Schedule,
		reg.Status, reg.EmailSent, reg.AdminNotificationSent,
	).Scan(&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdateNotificationFlags records the outcome of the notification attempts.
func (r *Repository) UpdateNotificationFlags(ctx context.Context, id string, emailSent, adminNotificationSent bool) error {
	const q = `UPDATE registrations
		SET email_sent = $2, admin_notification_sent = $3, updated_at = NOW()
		WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, q, id, emailSent, adminNotificationSent)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(
		&reg.ID, &reg.FirstName, &reg.LastName, &reg.Email, &reg.Schedule,
		&reg.Status, &reg.EmailSent, &reg.AdminNotificationSent,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
