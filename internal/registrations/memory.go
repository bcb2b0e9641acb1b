package registrations

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/classreg/backend/internal/models"
)

// MemoryStore is a mutex-guarded in-memory Store for tests and db-less runs.
// Construct one per process or per test; Reset clears it explicitly.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]models.Registration
	byEmail map[string]string
}

// NewMemoryStore creates an empty in-memory registration store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]models.Registration),
		byEmail: make(map[string]string),
	}
}

// FindByEmail returns the registration for a normalized email, or (nil, nil).
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	reg := s.byID[id]
	return &reg, nil
}

// FindByID returns the registration with the exact id, or (nil, nil).
func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &reg, nil
}

// Create stores a registration. The email uniqueness check and the insert
// happen under one lock, so concurrent creates cannot both win.
func (s *MemoryStore) Create(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(reg.Email)
	if _, exists := s.byEmail[key]; exists {
		return ErrEmailTaken
	}
	now := time.Now().UTC()
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = now
	}
	reg.UpdatedAt = now
	s.byID[reg.ID] = *reg
	s.byEmail[key] = reg.ID
	return nil
}

// UpdateNotificationFlags records the outcome of the notification attempts.
func (s *MemoryStore) UpdateNotificationFlags(_ context.Context, id string, emailSent, adminNotificationSent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	reg.EmailSent = emailSent
	reg.AdminNotificationSent = adminNotificationSent
	reg.UpdatedAt = time.Now().UTC()
	s.byID[id] = reg
	return nil
}

// Reset clears all stored registrations.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]models.Registration)
	s.byEmail = make(map[string]string)
}
