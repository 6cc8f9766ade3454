package mailer

import (
	"fmt"

	"github.com/momohub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail to customers
type Mailer interface {
	SendPasswordResetCode(toEmail, code string) error
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from SMTP configuration
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordResetCode emails a one-time password reset code
func (m *SMTPMailer) SendPasswordResetCode(toEmail, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "MomoHub password reset code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your password reset code is %s. It expires shortly; if you did not request a reset, ignore this mail.", code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset code to %s: %w", toEmail, err)
	}
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)

// LogMailer writes mail to the log instead of sending it.
// Used in development where no SMTP relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a mailer that only logs
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("mailer")}
}

// SendPasswordResetCode logs the reset code instead of mailing it
func (m *LogMailer) SendPasswordResetCode(toEmail, code string) error {
	m.logger.Info("password reset code issued",
		zap.String("to", toEmail),
		zap.String("code", code),
	)
	return nil
}

var _ Mailer = (*LogMailer)(nil)
