package mailer

import (
	"context"

	"github.com/farellandr/melaka-tickets/internal/logger"
)

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

//go:generate mockery --name Sender --output ./mocks
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// LogSender only logs messages. Used when running without a SendGrid key.
type LogSender struct {
	l logger.Provider
}

func NewLogSender(l logger.Provider) *LogSender {
	return &LogSender{l: l}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	s.l(ctx).Infof("email to %s: %s\n%s", msg.To, msg.Subject, msg.HTML)
	return nil
}
