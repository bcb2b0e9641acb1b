package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classreg/backend/internal/emaillogs"
	"github.com/classreg/backend/internal/models"
	"github.com/classreg/backend/internal/notify"
	"github.com/classreg/backend/internal/registrations"
	"github.com/classreg/backend/pkg/queue"
)

type failingSender struct{}

func (failingSender) Send(context.Context, string, string, string) error {
	return errors.New("smtp timeout")
}

func emailJob(t *testing.T, payload queue.EmailPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{ID: "job-1", Type: queue.JobTypeEmail, Payload: raw, CreatedAt: time.Now()}
}

func seedRegistration(t *testing.T, store *registrations.MemoryStore) *models.Registration {
	t.Helper()
	reg := &models.Registration{
		ID:        "reg_1710496800000abc123xyz",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Schedule:  "2024-03-15T10:00:00Z",
		Status:    models.StatusConfirmed,
	}
	require.NoError(t, store.Create(context.Background(), reg))
	return reg
}

func TestProcessDeliversAndUpdatesFlag(t *testing.T) {
	store := registrations.NewMemoryStore()
	logs := emaillogs.NewMemoryStore()
	reg := seedRegistration(t, store)
	p := NewEmailProcessor(store, notify.NewLogSender(nil), logs, nil, nil)

	job := emailJob(t, queue.EmailPayload{
		EmailType:      models.EmailTypeConfirmation,
		RegistrationID: reg.ID,
		RecipientEmail: reg.Email,
		Subject:        "Your class registration",
	})
	require.NoError(t, p.Process(context.Background(), job))

	entries, err := logs.ListByRegistration(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EmailLogStatusSent, entries[0].Status)

	updated, err := store.FindByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.True(t, updated.EmailSent)
}

func TestProcessSendFailureRecordsAndErrors(t *testing.T) {
	store := registrations.NewMemoryStore()
	logs := emaillogs.NewMemoryStore()
	reg := seedRegistration(t, store)
	p := NewEmailProcessor(store, failingSender{}, logs, nil, nil)

	job := emailJob(t, queue.EmailPayload{
		EmailType:      models.EmailTypeConfirmation,
		RegistrationID: reg.ID,
	})
	require.Error(t, p.Process(context.Background(), job))

	entries, err := logs.ListByRegistration(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EmailLogStatusFailed, entries[0].Status)

	updated, err := store.FindByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.False(t, updated.EmailSent)
}

func TestProcessUnknownRegistration(t *testing.T) {
	p := NewEmailProcessor(registrations.NewMemoryStore(), notify.NewLogSender(nil), emaillogs.NewMemoryStore(), nil, nil)
	job := emailJob(t, queue.EmailPayload{
		EmailType:      models.EmailTypeConfirmation,
		RegistrationID: "reg_missing",
	})
	err := p.Process(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProcessRejectsUnknownJobType(t *testing.T) {
	p := NewEmailProcessor(registrations.NewMemoryStore(), notify.NewLogSender(nil), emaillogs.NewMemoryStore(), nil, nil)
	err := p.Process(context.Background(), &queue.Job{ID: "job-2", Type: "bogus"})
	require.Error(t, err)
}
