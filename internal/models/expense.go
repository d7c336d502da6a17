package models

// SplitType describes how an expense was divided among its participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitExact      SplitType = "exact"
)

// Split is one participant's portion of an expense.
type Split struct {
	// UserID identifies the participant. Unique within one expense.
	UserID string

	// Amount is this participant's share of the expense total.
	Amount float64

	// Paid marks a share that is already settled and must not be counted
	// toward outstanding balances. The payer's own share is typically
	// created with Paid set.
	Paid bool
}

// Expense represents a shared expense, immutable once created except for
// its append-only comment list.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable name of the expense.
	Description string

	// Amount is the total expense amount, always positive. The sum of all
	// split amounts equals Amount within a tolerance of 0.01; this is
	// enforced at creation time.
	Amount float64

	// Category is the spending category, defaulting to "Other".
	Category string

	// Date is the expense date in epoch milliseconds.
	Date int64

	// PaidByUserID is the user who paid the expense.
	PaidByUserID string

	// SplitType records how the splits were derived.
	SplitType SplitType

	// Splits are the per-participant shares.
	Splits []Split

	// GroupID is the owning group, or empty for a personal expense.
	GroupID string

	// CreatedBy is the user who recorded the expense.
	CreatedBy string

	// Comments is the append-only discussion thread.
	Comments []Comment

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64
}

// SplitFor returns the split belonging to userID, or nil if the user does
// not participate in the expense.
func (e *Expense) SplitFor(userID string) *Split {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i]
		}
	}
	return nil
}

// Involves reports whether the user is the payer or holds a split.
func (e *Expense) Involves(userID string) bool {
	return e.PaidByUserID == userID || e.SplitFor(userID) != nil
}

// Comment is one message in an expense or group discussion thread.
type Comment struct {
	UserID    string
	Text      string
	CreatedAt int64
}
