package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeSender) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func hearingMessage() Message {
	return Message{
		Recipients: []Recipient{
			{UserID: "u1", Name: "Judge Rao", Email: "rao@court.example"},
			{UserID: "u2", Name: "No Mail"},
			{Name: "Asha", Email: "asha@example.com"},
		},
		Subject: "Hearing scheduled: First hearing",
		Event:   EventHearingScheduled,
		Intro:   "A hearing was scheduled for case 2024-000001.",
		Fields:  []Field{{Label: "Venue", Value: "Court room 4"}},
		Link:    "https://efiling.example/meeting/meeting-1",
	}
}

func TestMailerSendsOnePerAddress(t *testing.T) {
	fs := &fakeSender{response: &rest.Response{StatusCode: 202}}
	m := &Mailer{client: fs, fromName: "Court E-Filing", fromEmail: "no-reply@court.example"}

	err := m.Notify(context.Background(), hearingMessage())

	require.NoError(t, err)
	require.Len(t, fs.sent, 2)
	assert.Equal(t, "Hearing scheduled: First hearing", fs.sent[0].Subject)
	assert.Equal(t, "no-reply@court.example", fs.sent[0].From.Address)
	assert.Equal(t, "rao@court.example", fs.sent[0].Personalizations[0].To[0].Address)
	assert.Equal(t, "asha@example.com", fs.sent[1].Personalizations[0].To[0].Address)
}

func TestMailerReportsErrorStatus(t *testing.T) {
	fs := &fakeSender{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	m := &Mailer{client: fs}

	err := m.Notify(context.Background(), hearingMessage())

	assert.ErrorContains(t, err, "sendgrid returned status 401")
}

func TestMailerReportsTransportError(t *testing.T) {
	fs := &fakeSender{err: errors.New("dial tcp: timeout")}
	m := &Mailer{client: fs}

	err := m.Notify(context.Background(), hearingMessage())

	assert.ErrorContains(t, err, "dial tcp: timeout")
	assert.Len(t, fs.sent, 2)
}
