package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentTypeGeneral     AppointmentType = "general"
	AppointmentTypeFollowup    AppointmentType = "followup"
	AppointmentTypeSpecialist  AppointmentType = "specialist"
	AppointmentTypeExam        AppointmentType = "exam"
	AppointmentTypeVaccination AppointmentType = "vaccination"
)

// AppointmentTypes lists every bookable consultation type.
var AppointmentTypes = []AppointmentType{
	AppointmentTypeGeneral,
	AppointmentTypeFollowup,
	AppointmentTypeSpecialist,
	AppointmentTypeExam,
	AppointmentTypeVaccination,
}

// AppointmentTypeLabels maps types to the labels used in confirmation emails.
var AppointmentTypeLabels = map[AppointmentType]string{
	AppointmentTypeGeneral:     "Consulta Geral",
	AppointmentTypeFollowup:    "Retorno",
	AppointmentTypeSpecialist:  "Especialista",
	AppointmentTypeExam:        "Exame",
	AppointmentTypeVaccination: "Vacinação",
}

func (t AppointmentType) Valid() bool {
	_, ok := AppointmentTypeLabels[t]
	return ok
}

// TimeSlots is the fixed bookable grid: half-hour slots, mornings 08:00-11:30
// and afternoons 14:00-17:30, zero-padded HH:MM.
var TimeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

var timeSlotSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(TimeSlots))
	for _, s := range TimeSlots {
		set[s] = struct{}{}
	}
	return set
}()

// ValidTimeSlot reports whether t is one of the bookable slots.
func ValidTimeSlot(t string) bool {
	_, ok := timeSlotSet[t]
	return ok
}

// DateFormat is the wire format for appointment dates. Dates are plain
// calendar days, never timezone-aware timestamps.
const DateFormat = "2006-01-02"

// Appointment is the booking record. JSON field names match the public API
// contract consumed by the scheduling frontend.
type Appointment struct {
	ID              uuid.UUID         `json:"id"`
	PatientName     string            `json:"patientName"`
	PatientEmail    string            `json:"patientEmail"`
	PatientPhone    string            `json:"patientPhone"`
	AppointmentType AppointmentType   `json:"appointmentType"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Status          AppointmentStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Confirmed reports whether the appointment actively occupies its slot.
func (a *Appointment) Confirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// CreateAppointmentRequest carries the candidate fields of a booking request.
// id, status and createdAt are assigned by the booking service, never by the
// client.
type CreateAppointmentRequest struct {
	PatientName     string          `json:"patientName" binding:"required,min=2"`
	PatientEmail    string          `json:"patientEmail" binding:"required,email"`
	PatientPhone    string          `json:"patientPhone" binding:"required,phone"`
	AppointmentType AppointmentType `json:"appointmentType" binding:"required,oneof=general followup specialist exam vaccination"`
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string          `json:"time" binding:"required,timeslot"`
	Notes           string          `json:"notes" binding:"max=1000"`
}

// DayAvailability is the public calendar projection for a single date.
type DayAvailability struct {
	Date           string   `json:"date"`
	BookedTimes    []string `json:"bookedTimes"`
	AvailableTimes []string `json:"availableTimes"`
}
