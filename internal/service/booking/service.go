package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/mediagenda/booking-api/internal/model"
	"github.com/mediagenda/booking-api/internal/notification"
	"github.com/mediagenda/booking-api/internal/repository"
	apperrors "github.com/mediagenda/booking-api/pkg/errors"
	"github.com/mediagenda/booking-api/pkg/metrics"
)

// SlotConflictMessage is the message shown to patients when the requested
// slot is already booked.
const SlotConflictMessage = "Este horário já está ocupado. Por favor, escolha outro."

const (
	availabilityCacheTTL     = 30 * time.Second
	availabilityCacheCleanup = time.Minute
)

// Service implements the booking lifecycle: it is the only component that
// creates or cancels appointment records.
type Service struct {
	repo              repository.AppointmentRepository
	notifier          notification.Notifier
	metrics           *metrics.Metrics
	availabilityCache *gocache.Cache
}

func NewService(repo repository.AppointmentRepository, notifier notification.Notifier, m *metrics.Metrics) *Service {
	return &Service{
		repo:              repo,
		notifier:          notifier,
		metrics:           m,
		availabilityCache: gocache.New(availabilityCacheTTL, availabilityCacheCleanup),
	}
}

// CreateAppointment books the requested slot. The request is expected to be
// shape-validated already; the slot conflict check is the store's atomic
// conditional insert, so two concurrent requests for the same slot cannot
// both succeed.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	apt := &model.Appointment{
		ID:              uuid.New(),
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		AppointmentType: req.AppointmentType,
		Date:            req.Date,
		Time:            req.Time,
		Status:          model.AppointmentStatusConfirmed,
		Notes:           req.Notes,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			if s.metrics != nil {
				s.metrics.BookingConflicts.Inc()
			}
			return nil, apperrors.NewConflict(SlotConflictMessage, err)
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.availabilityCache.Delete(apt.Date)

	// Best-effort confirmation. The appointment stays confirmed whether or
	// not the notification goes out.
	if err := s.notifier.Send(ctx, apt); err != nil {
		if s.metrics != nil {
			s.metrics.NotificationFailures.Inc()
		}
		log.Error().Err(err).
			Str("appointment_id", apt.ID.String()).
			Str("recipient", apt.PatientEmail).
			Msg("confirmation notification failed, appointment kept")
	}

	return apt, nil
}

// CancelAppointment flips the record to cancelled, freeing its slot for new
// bookings. Cancelling an already-cancelled record succeeds.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Appointment", err)
		}
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCancelled.Inc()
	}
	s.availabilityCache.Delete(apt.Date)
	return apt, nil
}

// GetAppointment returns a single record, cancelled included.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

// ListAppointments returns every record ordered by date then time, cancelled
// included; this is the admin history view.
func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// GetDayAvailability projects booked and free slots for a date. Results are
// cached briefly; creates and cancels invalidate the date's entry.
func (s *Service) GetDayAvailability(ctx context.Context, date string) (*model.DayAvailability, error) {
	if cached, ok := s.availabilityCache.Get(date); ok {
		return cached.(*model.DayAvailability), nil
	}

	booked, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments for %s: %w", date, err)
	}

	bookedTimes := make([]string, 0, len(booked))
	taken := make(map[string]struct{}, len(booked))
	for _, apt := range booked {
		bookedTimes = append(bookedTimes, apt.Time)
		taken[apt.Time] = struct{}{}
	}

	available := make([]string, 0, len(model.TimeSlots))
	for _, slot := range model.TimeSlots {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	day := &model.DayAvailability{
		Date:           date,
		BookedTimes:    bookedTimes,
		AvailableTimes: available,
	}
	s.availabilityCache.Set(date, day, gocache.DefaultExpiration)
	return day, nil
}
