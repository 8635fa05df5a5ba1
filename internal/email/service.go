package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Madumtv/healthcentral-sub001/internal/config"
)

type Service interface {
	SendReminder(ctx context.Context, to, medicationName string) error
	SendWelcome(ctx context.Context, to, firstName string) error
}

type service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg config.SMTPConfig) Service {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *service) SendReminder(_ context.Context, to, medicationName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Medication reminder")
	m.SetBody("text/plain", fmt.Sprintf("It's time to take %s.", medicationName))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}

func (s *service) SendWelcome(_ context.Context, to, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to HealthCentral")
	m.SetBody("text/plain", fmt.Sprintf("Hi %s, your account is ready.", firstName))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
