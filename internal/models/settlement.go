package models

// Settlement represents a recorded payment between two users that reduces an
// outstanding debt. Immutable once created.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Amount is the payment amount, always positive.
	Amount float64

	// Note is an optional description.
	Note string

	// Date is the settlement date in epoch milliseconds.
	Date int64

	// PaidByUserID is the user who transferred the money (debtor settling up).
	PaidByUserID string

	// ReceivedByUserID is the user who received the payment.
	ReceivedByUserID string

	// GroupID is the owning group, or empty for a personal settlement.
	GroupID string

	// CreatedBy is the user who recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64
}
