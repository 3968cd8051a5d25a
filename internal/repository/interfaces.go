package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mediagenda/booking-api/internal/model"
)

// Sentinel errors shared by every AppointmentRepository implementation.
var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotTaken is returned by Create when a confirmed appointment
	// already occupies the requested (date, time) slot.
	ErrSlotTaken = errors.New("time slot already booked")
)

// AppointmentRepository owns all appointment records. Records are only ever
// mutated through Create and Cancel; callers receive copies they may not use
// to mutate store state.
type AppointmentRepository interface {
	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)

	// List returns every record, cancelled included, ordered by date then
	// time ascending.
	List(ctx context.Context) ([]*model.Appointment, error)

	// ListByDate returns the confirmed records for the given date. Cancelled
	// records never appear; their slots are free again.
	ListByDate(ctx context.Context, date string) ([]*model.Appointment, error)

	// Create inserts the record if its (date, time) slot is not held by any
	// confirmed record. The conflict check and the insert are a single
	// atomic step; concurrent creates for the same slot serialize here and
	// the loser gets ErrSlotTaken.
	Create(ctx context.Context, apt *model.Appointment) error

	// Cancel flips the record's status to cancelled and returns the updated
	// record, or ErrNotFound. Cancelling an already-cancelled record
	// re-applies the status and succeeds.
	Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
}
