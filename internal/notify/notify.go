// Package notify delivers balance and activity notifications to users.
package notify

import "context"

// EventType identifies what happened.
type EventType string

const (
	EventExpenseAdded       EventType = "expense_added"
	EventSettlementRecorded EventType = "settlement_recorded"
	EventGroupInvite        EventType = "group_invite"
	EventBalanceReminder    EventType = "balance_reminder"
	EventContactMessage     EventType = "contact_message"
)

// Event is one notification to one recipient.
type Event struct {
	Type           EventType `json:"type"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	// ActorName is the user whose action triggered the event (payer,
	// settler, inviter, or reminder sender).
	ActorName string `json:"actor_name"`

	// Description carries the expense description, settlement note, or
	// group name depending on the event type.
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	GroupName   string  `json:"group_name,omitempty"`
}

// Notifier delivers events. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
	Close() error
}

// Noop discards all events. Used when no notification backend is configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, event Event) error { return nil }

func (Noop) Close() error { return nil }
