package notify

import (
	"context"
	"errors"
)

// Recipient is a single addressee of a notification. UserID routes websocket
// pushes, Email routes mail; either may be empty.
type Recipient struct {
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Field is one labelled value of the structured content
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Message is what the core hands to a notifier
type Message struct {
	Recipients []Recipient `json:"-"`
	Subject    string      `json:"subject"`
	Event      string      `json:"event"`
	Intro      string      `json:"intro"`
	Fields     []Field     `json:"fields"`
	Link       string      `json:"link,omitempty"`
}

// Events sent by the case core
const (
	EventHearingScheduled = "hearing.scheduled"
	EventHearingCancelled = "hearing.cancelled"
	EventHearingReminder  = "hearing.reminder"
	EventCaseStatus       = "case.status"
)

// Notifier delivers a message on a best effort basis
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Nop drops every message
type Nop struct{}

// Notify implements Notifier
func (Nop) Notify(context.Context, Message) error { return nil }

// Multi fans a message out to every notifier and joins their errors
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
