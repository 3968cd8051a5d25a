package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mediagenda/booking-api/internal/model"
	"github.com/mediagenda/booking-api/internal/repository"
)

// AppointmentRepository is the in-memory appointment store. A single RWMutex
// guards the record map; Create runs its conflict scan and insert inside one
// write-lock section, which closes the check-then-act race between two
// concurrent bookings for the same slot.
type AppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]*model.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		appointments: make(map[uuid.UUID]*model.Appointment),
	}
}

func (r *AppointmentRepository) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(apt), nil
}

func (r *AppointmentRepository) List(_ context.Context) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Appointment, 0, len(r.appointments))
	for _, apt := range r.appointments {
		all = append(all, copyOf(apt))
	}

	// Dates are zero-padded YYYY-MM-DD and times zero-padded HH:MM, so
	// lexicographic order is chronological order.
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		return all[i].Time < all[j].Time
	})
	return all, nil
}

func (r *AppointmentRepository) ListByDate(_ context.Context, date string) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*model.Appointment, 0)
	for _, apt := range r.appointments {
		if apt.Date == date && apt.Confirmed() {
			matches = append(matches, copyOf(apt))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Time < matches[j].Time
	})
	return matches, nil
}

func (r *AppointmentRepository) Create(_ context.Context, apt *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.Confirmed() && existing.Date == apt.Date && existing.Time == apt.Time {
			return repository.ErrSlotTaken
		}
	}

	r.appointments[apt.ID] = copyOf(apt)
	return nil
}

func (r *AppointmentRepository) Cancel(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	apt.Status = model.AppointmentStatusCancelled
	return copyOf(apt), nil
}

// Size returns the number of records held, cancelled included.
func (r *AppointmentRepository) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.appointments)
}

func copyOf(apt *model.Appointment) *model.Appointment {
	c := *apt
	return &c
}
