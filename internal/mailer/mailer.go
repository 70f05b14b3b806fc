// Package mailer delivers transactional email: welcome messages with a
// temporary password, password reset links and reset confirmations.
package mailer

import (
	"context"
	"errors"
	"log/slog"
)

// ErrDelivery is returned when the provider rejects a message.
var ErrDelivery = errors.New("email delivery failed")

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them. It is used when no
// provider is configured. Bodies are never logged since they carry
// credentials.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("Email not sent, no provider configured", "to", msg.To, "subject", msg.Subject)
	return nil
}
