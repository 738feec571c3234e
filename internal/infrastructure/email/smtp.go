package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"solarops/internal/application/notification/usecases"
	"solarops/internal/shared/config"
	"solarops/internal/shared/logger"
)

// dialer is the part of gomail.Dialer the mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends multipart messages with a plain-text body and an HTML alternative.
type SMTPMailer struct {
	from     string
	fromName string
	dialer   dialer
	logger   logger.Interface
}

func NewSMTPMailer(cfg config.EmailConfig, logger logger.Interface) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("from address is required")
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		dialer:   gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPassword),
		logger:   logger,
	}, nil
}

func (s *SMTPMailer) Send(ctx context.Context, msg usecases.Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := s.build(msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *SMTPMailer) build(msg usecases.Message) *gomail.Message {
	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.from, s.fromName)
	} else {
		m.SetHeader("From", s.from)
	}
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	plain := msg.TextBody
	if plain == "" {
		plain = msg.Subject
	}
	m.SetBody("text/plain", plain)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	return m
}
