package alert

import (
	"context"
	"log/slog"

	"github.com/Hades1710/ThirdWave/internal/models"
)

// RichChannel submits a structured alert payload to the notification API.
// A nil error means the collaborator acknowledged delivery.
type RichChannel interface {
	Notify(ctx context.Context, user models.User, event models.DistressEvent, roles []models.Relationship) error
}

// PlainChannel submits a composed message to the mail collaborator.
type PlainChannel interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// dispatchState makes the rich-then-fallback control flow explicit instead of
// cascading through error handling.
type dispatchState int

const (
	stateNotStarted dispatchState = iota
	stateRichAttempted
	stateFallbackAttempted
	stateDone
)

type Dispatcher struct {
	rich        RichChannel
	plain       PlainChannel
	richEnabled bool
}

func NewDispatcher(rich RichChannel, plain PlainChannel, richEnabled bool) *Dispatcher {
	return &Dispatcher{
		rich:        rich,
		plain:       plain,
		richEnabled: richEnabled,
	}
}

// Dispatch delivers one event to the eligible contacts: rich channel first
// when preferred and enabled, plain channel as fallback. The rich attempt
// always happens before any fallback, and the fallback only fires when rich
// delivery did not succeed, so each contact is told at most once. Rich-channel
// errors never escape; they only steer the state machine to the fallback.
func (d *Dispatcher) Dispatch(ctx context.Context, user models.User, eligible []models.Contact, severity models.Severity, event models.DistressEvent, roles []models.Relationship, preferRich bool) models.AlertOutcome {
	out := models.AlertOutcome{
		Channel:  models.ChannelNone,
		Severity: severity,
	}

	if len(eligible) == 0 {
		out.Reason = models.ReasonNoEligibleContacts
		return out
	}

	state := stateNotStarted
	for state != stateDone {
		switch state {
		case stateNotStarted:
			if !preferRich || !d.richEnabled || d.rich == nil {
				state = stateRichAttempted
				continue
			}

			// The rich payload embeds only the eligible contacts.
			richUser := user
			richUser.Contacts = eligible

			if err := d.rich.Notify(ctx, richUser, event, roles); err != nil {
				slog.Warn("rich channel delivery failed, falling back",
					"user_id", user.ID, "reason", models.ReasonRichChannelFailure, "error", err)
				state = stateRichAttempted
				continue
			}

			out.Delivered = true
			out.Channel = models.ChannelRich
			out.Recipients = addresses(eligible)
			state = stateDone

		case stateRichAttempted:
			email, err := BuildEmail(user, severity, event, eligible[0])
			if err != nil {
				// Template execution over plain values; treated as a plain
				// channel failure if it ever happens.
				slog.Error("error composing alert email", "user_id", user.ID, "error", err)
				out.Reason = models.ReasonPlainChannelFailure
				state = stateFallbackAttempted
				continue
			}

			recipients := addresses(eligible)
			if err := d.plain.Send(ctx, recipients, email.Subject, email.Body); err != nil {
				slog.Error("plain channel delivery failed",
					"user_id", user.ID, "recipients", len(recipients), "error", err)
				out.Reason = models.ReasonPlainChannelFailure
				state = stateFallbackAttempted
				continue
			}

			out.Delivered = true
			out.Channel = models.ChannelPlain
			out.Recipients = recipients
			state = stateDone

		case stateFallbackAttempted:
			// Both attempts exhausted. Plain failure is terminal for the call.
			state = stateDone
		}
	}

	return out
}

func addresses(contacts []models.Contact) []string {
	addrs := make([]string, 0, len(contacts))
	for _, c := range contacts {
		addrs = append(addrs, c.Address())
	}
	return addrs
}
