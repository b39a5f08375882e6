package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	templates "github.com/linesmerrill/efiling-api/templates/html"
)

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer sends notifications as email through SendGrid
type Mailer struct {
	client    sender
	fromName  string
	fromEmail string
}

// NewMailer returns a SendGrid backed mailer
func NewMailer(apiKey, fromEmail, fromName string) *Mailer {
	return &Mailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Notify sends one email per recipient that has an address
func (m *Mailer) Notify(ctx context.Context, msg Message) error {
	rows := make([]templates.Row, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		rows = append(rows, templates.Row{Label: f.Label, Value: f.Value})
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	var errs []error
	for _, r := range msg.Recipients {
		if r.Email == "" {
			continue
		}
		htmlContent := templates.RenderNotificationEmail(msg.Subject, r.Name, msg.Intro, rows, msg.Link)
		plainText := templates.RenderNotificationText(r.Name, msg.Intro, rows, msg.Link)
		message := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail(r.Name, r.Email), plainText, htmlContent)

		response, err := m.client.SendWithContext(ctx, message)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to send %s to %s: %w", msg.Event, r.Email, err))
			continue
		}
		if response.StatusCode >= 400 {
			zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
			errs = append(errs, fmt.Errorf("sendgrid returned status %d for %s", response.StatusCode, r.Email))
		}
	}
	return errors.Join(errs...)
}
