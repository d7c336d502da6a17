package models

// ReminderScope is the kind of entity a reminder preference applies to.
type ReminderScope string

const (
	ScopeGroup   ReminderScope = "group"
	ScopeContact ReminderScope = "contact"
)

// ReminderFrequency is how often a stored reminder fires.
type ReminderFrequency string

const (
	FrequencyWeekly  ReminderFrequency = "weekly"
	FrequencyMonthly ReminderFrequency = "monthly"
)

// ReminderPreference stores a user's wish to be nudged about outstanding
// balances for one group or contact. The engine never reads these; a
// scheduler outside this repository consumes them.
type ReminderPreference struct {
	ID        string
	UserID    string
	ScopeType ReminderScope
	ScopeID   string
	Frequency ReminderFrequency
	CreatedAt int64
	UpdatedAt int64
}

// HiddenContact marks a counterparty the owner chose to hide from their
// contact list. Soft-delete only; balances still include the hidden user.
type HiddenContact struct {
	OwnerUserID   string
	ContactUserID string
	CreatedAt     int64
}
