package registrations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classreg/backend/internal/models"
)

type stubNotifier struct {
	confirmOK    bool
	adminOK      bool
	confirmCalls int
	adminCalls   int
}

func (s *stubNotifier) SendConfirmation(context.Context, *models.Registration) bool {
	s.confirmCalls++
	return s.confirmOK
}

func (s *stubNotifier) SendAdminAlert(context.Context, *models.Registration) bool {
	s.adminCalls++
	return s.adminOK
}

func newTestService(t *testing.T) (*Service, *MemoryStore, *stubNotifier) {
	t.Helper()
	store := NewMemoryStore()
	notifier := &stubNotifier{confirmOK: true, adminOK: true}
	return NewService(store, notifier, nil), store, notifier
}

func TestCreateSuccess(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Registration submitted successfully", result.Message)
	assert.True(t, strings.HasPrefix(result.RegistrationID, "reg_"))
	assert.True(t, result.EmailSent)
	assert.True(t, result.AdminNotificationSent)
	assert.Equal(t, "Check your email for confirmation details", result.NextSteps)
	assert.Equal(t, 1, notifier.confirmCalls)
	assert.Equal(t, 1, notifier.adminCalls)

	stored, err := store.FindByID(ctx, result.RegistrationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, "john.doe@example.com", stored.Email)
	assert.True(t, stored.EmailSent)
	assert.True(t, stored.AdminNotificationSent)
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc, store, _ := newTestService(t)
	req := validSubmission()
	req.Email = "John.Doe@EXAMPLE.com"
	req.ConfirmEmail = "john.doe@example.com"

	result, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	stored, err := store.FindByID(context.Background(), result.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", stored.Email)
}

func TestCreateValidationFailureLeavesNoRecord(t *testing.T) {
	svc, store, notifier := newTestService(t)
	req := validSubmission()
	req.FirstName = "John123"

	_, err := svc.Create(context.Background(), req)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	require.NotEmpty(t, invalid.Errors)
	assert.Equal(t, "firstName", invalid.Errors[0].Field)
	assert.Zero(t, notifier.confirmCalls)
	assert.Zero(t, notifier.adminCalls)

	existing, err := store.FindByEmail(context.Background(), "john.doe@example.com")
	require.NoError(t, err)
	assert.Nil(t, existing)
}

func TestCreateDuplicateRejectedWithExistingID(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validSubmission())
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.RegistrationID, dup.ExistingID)
	// Only the first create notified.
	assert.Equal(t, 1, notifier.confirmCalls)
	assert.Equal(t, 1, notifier.adminCalls)
}

func TestCreateDuplicateIsCaseInsensitive(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	req := validSubmission()
	req.Email = "JOHN.DOE@example.com"
	req.ConfirmEmail = "JOHN.DOE@example.com"
	_, err = svc.Create(ctx, req)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.RegistrationID, dup.ExistingID)
}

// raceStore simulates losing the check-then-act race: the fast-path lookup
// sees nothing, then the insert hits the unique constraint.
type raceStore struct {
	*MemoryStore
	winner *models.Registration
	raced  bool
}

func (s *raceStore) FindByEmail(ctx context.Context, email string) (*models.Registration, error) {
	if !s.raced {
		return nil, nil
	}
	return s.winner, nil
}

func (s *raceStore) Create(ctx context.Context, reg *models.Registration) error {
	s.raced = true
	return ErrEmailTaken
}

func TestCreateMapsStorageConflictToDuplicate(t *testing.T) {
	winner := &models.Registration{ID: "reg_existing", Email: "john.doe@example.com"}
	store := &raceStore{MemoryStore: NewMemoryStore(), winner: winner}
	svc := NewService(store, &stubNotifier{confirmOK: true, adminOK: true}, nil)

	_, err := svc.Create(context.Background(), validSubmission())
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "reg_existing", dup.ExistingID)
}

func TestCreateRecordsFailedNotifications(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, &stubNotifier{confirmOK: false, adminOK: false}, nil)
	ctx := context.Background()

	result, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.EmailSent)
	assert.False(t, result.AdminNotificationSent)

	stored, err := store.FindByID(ctx, result.RegistrationID)
	require.NoError(t, err)
	assert.False(t, stored.EmailSent)
	assert.False(t, stored.AdminNotificationSent)
}

type failingStore struct{ Store }

func (s failingStore) FindByEmail(context.Context, string) (*models.Registration, error) {
	return nil, errors.New("connection refused")
}

func TestCreateInternalFaultIsWrapped(t *testing.T) {
	svc := NewService(failingStore{NewMemoryStore()}, &stubNotifier{}, nil)
	_, err := svc.Create(context.Background(), validSubmission())
	require.Error(t, err)
	var invalid *InvalidInputError
	var dup *DuplicateError
	assert.False(t, errors.As(err, &invalid))
	assert.False(t, errors.As(err, &dup))
}

func TestValidateOnlyValid(t *testing.T) {
	svc, _, _ := newTestService(t)
	result := svc.ValidateOnly(context.Background(), validSubmission())
	assert.True(t, result.Valid)
	assert.Equal(t, "All fields are valid", result.Message)
	assert.Nil(t, result.Errors)
}

func TestValidateOnlyInvalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validSubmission()
	req.Email = "a@b.com"
	req.ConfirmEmail = "c@b.com"

	result := svc.ValidateOnly(context.Background(), req)
	assert.False(t, result.Valid)
	assert.Equal(t, "Validation failed", result.Message)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "confirmEmail", result.Errors[0].Field)
	assert.Equal(t, "Email addresses do not match", result.Errors[0].Message)
}

func TestValidateOnlyDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	result := svc.ValidateOnly(ctx, validSubmission())
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "email", result.Errors[0].Field)
	assert.Equal(t, "Email already registered", result.Errors[0].Message)
	assert.Equal(t, "DUPLICATE_EMAIL", result.Errors[0].Code)
}

func TestValidateOnlyNeverPersists(t *testing.T) {
	svc, store, notifier := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.ValidateOnly(ctx, validSubmission())
	}
	existing, err := store.FindByEmail(ctx, "john.doe@example.com")
	require.NoError(t, err)
	assert.Nil(t, existing)
	assert.Zero(t, notifier.confirmCalls)
	assert.Zero(t, notifier.adminCalls)
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	details, err := svc.GetByID(ctx, created.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, created.RegistrationID, details.ID)
	assert.Equal(t, "John", details.FirstName)
	assert.Equal(t, "Doe", details.LastName)
	assert.Equal(t, "john.doe@example.com", details.Email)
	assert.Equal(t, "2024-03-15T10:00:00Z", details.Schedule)
	assert.Equal(t, models.StatusConfirmed, details.Status)
	assert.True(t, details.EmailSent)

	parsed, err := time.Parse(time.RFC3339, details.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.GetByID(context.Background(), "reg_nonexistent123")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}
