package notification

import (
	"context"

	"github.com/mediagenda/booking-api/internal/model"
	"github.com/mediagenda/booking-api/pkg/logger"
)

// Notifier delivers a confirmation message for a freshly booked appointment.
// Delivery is best-effort: callers log failures and keep the booking.
type Notifier interface {
	Send(ctx context.Context, apt *model.Appointment) error
}

// LogNotifier is the fallback used when no SMTP server is configured. It
// records what would have been sent instead of sending it.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, apt *model.Appointment) error {
	n.log.WithFields(map[string]interface{}{
		"recipient": apt.PatientEmail,
		"patient":   apt.PatientName,
		"date":      apt.Date,
		"time":      apt.Time,
		"type":      string(apt.AppointmentType),
	}).Info("email not configured, confirmation would be sent")
	return nil
}
