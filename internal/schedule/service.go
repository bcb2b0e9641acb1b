package schedule

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/classreg/backend/internal/models"
)

// Service serves the static class slot list. Slots live in memory; a real
// deployment would back this with the database.
type Service struct {
	mu     sync.RWMutex
	slots  []models.Schedule
	logger *zap.Logger
}

// NewService creates a schedule service seeded with the default slot list.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{slots: defaultSlots(), logger: logger}
}

// Available returns available slots, optionally filtered by date (YYYY-MM-DD)
// and capped at limit.
func (s *Service) Available(date string, limit int) []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Schedule, 0, len(s.slots))
	for _, slot := range s.slots {
		if !slot.Available {
			continue
		}
		if date != "" && slot.Date != date {
			continue
		}
		out = append(out, slot)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	s.logger.Info("retrieved available schedules",
		zap.Int("count", len(out)), zap.String("date", date), zap.Int("limit", limit))
	return out
}

// IsAvailable reports whether the slot matching an ISO-8601 datetime is open.
func (s *Service) IsAvailable(datetime string) bool {
	t, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		return false
	}
	date := t.UTC().Format("2006-01-02")
	hhmmss := t.UTC().Format("15:04:05")

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, slot := range s.slots {
		if slot.Date == date && slot.Time == hhmmss {
			return slot.Available
		}
	}
	return false
}

// UpdateEnrollment adjusts a slot's enrollment count and flips availability
// when capacity is reached or freed.
func (s *Service) UpdateEnrollment(scheduleID string, increment bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		slot := &s.slots[i]
		if slot.ID != scheduleID {
			continue
		}
		if increment {
			slot.CurrentEnrollment++
			if slot.CurrentEnrollment >= slot.MaxCapacity {
				slot.Available = false
			}
		} else if slot.CurrentEnrollment > 0 {
			slot.CurrentEnrollment--
			if slot.CurrentEnrollment < slot.MaxCapacity {
				slot.Available = true
			}
		}
		s.logger.Info("updated schedule enrollment",
			zap.String("schedule_id", scheduleID),
			zap.Bool("increment", increment),
			zap.Int("current_enrollment", slot.CurrentEnrollment),
		)
		return
	}
}

func defaultSlots() []models.Schedule {
	return []models.Schedule{
		{ID: "sched_001", Date: "2024-03-15", Time: "09:00:00", Available: true, MaxCapacity: 20, CurrentEnrollment: 15},
		{ID: "sched_002", Date: "2024-03-15", Time: "14:00:00", Available: true, MaxCapacity: 20, CurrentEnrollment: 8},
		{ID: "sched_003", Date: "2024-03-16", Time: "10:00:00", Available: true, MaxCapacity: 25, CurrentEnrollment: 12},
		{ID: "sched_004", Date: "2024-03-16", Time: "15:00:00", Available: true, MaxCapacity: 25, CurrentEnrollment: 18},
		{ID: "sched_005", Date: "2024-03-17", Time: "08:00:00", Available: true, MaxCapacity: 30, CurrentEnrollment: 22},
		{ID: "sched_006", Date: "2024-03-17", Time: "13:00:00", Available: true, MaxCapacity: 30, CurrentEnrollment: 25},
		{ID: "sched_007", Date: "2024-03-18", Time: "11:00:00", Available: true, MaxCapacity: 20, CurrentEnrollment: 8},
		{ID: "sched_008", Date: "2024-03-18", Time: "16:00:00", Available: true, MaxCapacity: 20, CurrentEnrollment: 14},
		{ID: "sched_009", Date: "2024-03-19", Time: "09:30:00", Available: true, MaxCapacity: 15, CurrentEnrollment: 11},
		{ID: "sched_010", Date: "2024-03-19", Time: "14:30:00", Available: true, MaxCapacity: 15, CurrentEnrollment: 7},
	}
}
