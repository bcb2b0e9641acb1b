package emaillogs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/classreg/backend/internal/models"
)

// MemoryStore is an in-memory Store for tests and db-less runs.
type MemoryStore struct {
	mu   sync.RWMutex
	logs []*models.EmailLog
}

// NewMemoryStore creates an empty in-memory email log store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert records a delivery attempt.
func (s *MemoryStore) Insert(_ context.Context, log *models.EmailLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = uuid.New()
	log.CreatedAt = time.Now().UTC()
	cp := *log
	s.logs = append(s.logs, &cp)
	return nil
}

// ListByRegistration returns email logs for a registration, newest first.
func (s *MemoryStore) ListByRegistration(_ context.Context, registrationID string) ([]*models.EmailLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*models.EmailLog
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].RegistrationID == registrationID {
			cp := *s.logs[i]
			list = append(list, &cp)
		}
	}
	return list, nil
}
