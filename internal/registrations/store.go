package registrations

import (
	"context"

	"github.com/classreg/backend/internal/models"
)

// Store is the persistence boundary for registrations. Lookups return
// (nil, nil) on a miss; Create returns ErrEmailTaken when another
// registration already holds the normalized email.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.Registration, error)
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	Create(ctx context.Context, reg *models.Registration) error
	UpdateNotificationFlags(ctx context.Context, id string, emailSent, adminNotificationSent bool) error
}
