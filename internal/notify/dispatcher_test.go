package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classreg/backend/config"
	"github.com/classreg/backend/internal/emaillogs"
	"github.com/classreg/backend/internal/models"
)

type failingSender struct{}

func (failingSender) Send(context.Context, string, string, string) error {
	return errors.New("smtp connect: connection refused")
}

func testRegistration() *models.Registration {
	return &models.Registration{
		ID:        "reg_1710496800000abc123xyz",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Schedule:  "2024-03-15T10:00:00Z",
		Status:    models.StatusConfirmed,
	}
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		FromAddress: "noreply@example.com",
		FromName:    "Class Registration",
		AdminEmail:  "admin@example.com",
	}
}

func TestDispatcherSuccessRecordsSentLogs(t *testing.T) {
	logs := emaillogs.NewMemoryStore()
	d := NewDispatcher(NewLogSender(nil), logs, testEmailConfig(), nil)
	reg := testRegistration()
	ctx := context.Background()

	assert.True(t, d.SendConfirmation(ctx, reg))
	assert.True(t, d.SendAdminAlert(ctx, reg))

	entries, err := logs.ListByRegistration(ctx, reg.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first: admin alert, then confirmation.
	assert.Equal(t, models.EmailTypeAdminAlert, entries[0].EmailType)
	assert.Equal(t, "admin@example.com", entries[0].RecipientEmail)
	assert.Equal(t, models.EmailTypeConfirmation, entries[1].EmailType)
	assert.Equal(t, "john.doe@example.com", entries[1].RecipientEmail)
	for _, e := range entries {
		assert.Equal(t, models.EmailLogStatusSent, e.Status)
		assert.NotNil(t, e.SentAt)
	}
}

func TestDispatcherFailureReturnsFalseAndNeverErrors(t *testing.T) {
	logs := emaillogs.NewMemoryStore()
	d := NewDispatcher(failingSender{}, logs, testEmailConfig(), nil)
	reg := testRegistration()
	ctx := context.Background()

	assert.False(t, d.SendConfirmation(ctx, reg))
	assert.False(t, d.SendAdminAlert(ctx, reg))

	entries, err := logs.ListByRegistration(ctx, reg.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, models.EmailLogStatusFailed, e.Status)
		assert.Nil(t, e.SentAt)
		assert.Contains(t, e.ErrorMessage, "connection refused")
	}
}

func TestDispatcherWorksWithoutLogStore(t *testing.T) {
	d := NewDispatcher(NewLogSender(nil), nil, testEmailConfig(), nil)
	assert.True(t, d.SendConfirmation(context.Background(), testRegistration()))
}
