package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/itsivali/careconnect-v1/internal/config"
	"github.com/itsivali/careconnect-v1/internal/model"
)

type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to string, appointment *model.Appointment) error
}

type smtpService struct {
	cfg config.SMTPConfig
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{cfg: cfg}
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to string, appointment *model.Appointment) error {
	if s.cfg.Host == "" || to == "" {
		return nil
	}

	doctor := appointment.Doctor()
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment Confirmation")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment with Dr. %s %s is confirmed for %s.",
		doctor.FirstName(), doctor.LastName(),
		appointment.AppointmentDate().Format("Mon, 2 Jan 2006 at 15:04"),
	))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
