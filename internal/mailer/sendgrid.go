package mailer

import (
	"context"
	"fmt"
	"net/http"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridSender sends from a fixed sender identity, which must be verified in SendGrid.
func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg *Message) error {
	m := mail.NewV3Mail()
	m.SetFrom(s.from)
	m.Subject = msg.Subject

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(msg.ToName, msg.To))
	m.AddPersonalizations(personalization)
	m.AddContent(mail.NewContent("text/html", msg.HTML))

	response, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return apperr.Wrap(apperr.ErrEmailDelivery, err, "")
	}

	if response.StatusCode >= http.StatusMultipleChoices {
		return apperr.Wrap(apperr.ErrEmailDelivery, fmt.Errorf("sendgrid responded %d: %s", response.StatusCode, response.Body), "")
	}

	return nil
}
