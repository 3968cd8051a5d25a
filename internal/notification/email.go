package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mediagenda/booking-api/internal/model"
)

// SMTPConfig holds the confirmation-mail settings, populated from SMTP_*
// environment variables.
type SMTPConfig struct {
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM" default:"no-reply@mediagenda.com.br"`
}

// Configured reports whether enough is set to attempt real delivery.
func (c SMTPConfig) Configured() bool {
	return c.Host != ""
}

// EmailNotifier sends the booking confirmation email over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *EmailNotifier) Send(ctx context.Context, apt *model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", apt.PatientEmail)
	m.SetHeader("Subject", "Confirmação de Agendamento - MediAgenda")
	m.SetBody("text/html", confirmationHTML(apt))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// confirmationHTML renders the confirmation mail body. Dates are shown as
// DD/MM/YYYY for the patient.
func confirmationHTML(apt *model.Appointment) string {
	notesRow := ""
	if apt.Notes != "" {
		notesRow = fmt.Sprintf(`
              <tr>
                <td colspan="2" style="padding: 12px 0; border-top: 1px solid #e5e7eb;">
                  <div style="color: #6b7280; font-size: 14px; margin-bottom: 4px;">Observações:</div>
                  <div style="font-size: 14px;">%s</div>
                </td>
              </tr>`, apt.Notes)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Confirmação de Agendamento</title>
  </head>
  <body style="font-family: sans-serif; line-height: 1.6; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #2563eb; color: white; padding: 30px; border-radius: 8px 8px 0 0; text-align: center;">
      <h1 style="margin: 0; font-size: 28px;">Agendamento Confirmado</h1>
    </div>
    <div style="background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 8px 8px;">
      <p style="font-size: 16px; margin-top: 0;">Olá <strong>%s</strong>,</p>
      <p style="font-size: 16px;">Sua consulta foi agendada com sucesso! Aqui estão os detalhes:</p>
      <div style="background: white; border: 2px solid #2563eb; border-radius: 8px; padding: 20px; margin: 20px 0;">
        <table style="width: 100%%; border-collapse: collapse;">
          <tr>
            <td style="padding: 8px 0; color: #6b7280; font-size: 14px;">Tipo de Consulta:</td>
            <td style="padding: 8px 0; text-align: right; font-weight: 600; font-size: 14px;">%s</td>
          </tr>
          <tr>
            <td style="padding: 8px 0; color: #6b7280; font-size: 14px;">Data:</td>
            <td style="padding: 8px 0; text-align: right; font-weight: 600; font-size: 14px;">%s</td>
          </tr>
          <tr>
            <td style="padding: 8px 0; color: #6b7280; font-size: 14px;">Horário:</td>
            <td style="padding: 8px 0; text-align: right; font-weight: 600; font-size: 14px;">%s</td>
          </tr>%s
        </table>
      </div>
      <div style="background: #fef3c7; border-left: 4px solid #f59e0b; padding: 15px; border-radius: 4px; margin: 20px 0;">
        <p style="margin: 0; font-size: 14px; color: #92400e;">
          <strong>Importante:</strong> Por favor, chegue com 15 minutos de antecedência e traga seus documentos.
        </p>
      </div>
      <p style="font-size: 14px; color: #6b7280; margin-bottom: 0;">
        Atenciosamente,<br>
        <strong style="color: #1f2937;">Equipe MediAgenda</strong>
      </p>
    </div>
    <div style="text-align: center; padding: 20px; color: #9ca3af; font-size: 12px;">
      <p style="margin: 0;">Este é um email automático, por favor não responda.</p>
    </div>
  </body>
</html>`,
		apt.PatientName,
		model.AppointmentTypeLabels[apt.AppointmentType],
		formatDate(apt.Date),
		apt.Time,
		notesRow,
	)
}

func formatDate(date string) string {
	if len(date) != len("2006-01-02") {
		return date
	}
	return date[8:10] + "/" + date[5:7] + "/" + date[0:4]
}
