package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mediagenda/booking-api/internal/model"
)

// RegisterBookingRules installs the booking-specific rules on gin's binding
// engine. Must be called once before the router handles requests.
func RegisterBookingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("timeslot", validateTimeSlot); err != nil {
		return fmt.Errorf("failed to register timeslot rule: %w", err)
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return fmt.Errorf("failed to register phone rule: %w", err)
	}
	return nil
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	return model.ValidTimeSlot(fl.Field().String())
}

// validatePhone requires at least 10 digits; separators and country prefixes
// are allowed in between.
func validatePhone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 10
}

// fieldMessages carries the user-facing validation messages, matching the
// wording the scheduling frontend shows next to each form field.
var fieldMessages = map[string]string{
	"PatientName":     "Nome deve ter pelo menos 2 caracteres",
	"PatientEmail":    "Email inválido",
	"PatientPhone":    "Telefone deve ter pelo menos 10 dígitos",
	"AppointmentType": "Selecione o tipo de consulta",
	"Date":            "Selecione uma data",
	"Time":            "Selecione um horário",
	"Notes":           "Observações muito longas",
}

// MessageFor renders a binding error as a human-readable message suitable for
// a 400 response body.
func MessageFor(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Dados do agendamento inválidos"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("Campo %s inválido", fe.Field()))
	}
	return strings.Join(msgs, "; ")
}
