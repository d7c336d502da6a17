// Package ledger computes net monetary positions between users from raw
// expense and settlement records.
//
// All computations are pure: they consume immutable record slices and return
// fresh results, so concurrent queries over the same snapshot are safe.
//
// Sign convention, used everywhere: the net balance of A relative to B is
// positive when B owes A and negative when A owes B. A settlement from A to B
// increases net(A, B) — the payer of a settlement is a debtor repaying, so
// their position improves.
package ledger

import "math"

const (
	// SnapThreshold is the magnitude below which a pairwise net balance is
	// snapped to exactly zero, suppressing floating-point dust left over
	// after settling up (e.g. a residual 0.03).
	SnapThreshold = 0.05

	// DustThreshold is the magnitude below which a per-counterparty net or a
	// pairwise group edge is dropped from output entirely.
	DustThreshold = 0.01
)

// Split is one participant's share of an expense. A share marked Paid is
// already settled and contributes nothing to any owed computation.
type Split struct {
	UserID string
	Amount float64
	Paid   bool
}

// Expense is the minimal expense shape needed for balance computation.
type Expense struct {
	PaidBy    string
	GroupID   string // empty for a personal expense
	Category  string
	Date      int64 // epoch milliseconds; zero when unknown
	CreatedAt int64 // epoch milliseconds, fallback for Date
	Amount    float64
	Splits    []Split
}

// Involves reports whether the user is the payer or holds a split,
// paid or not.
func (e Expense) Involves(userID string) bool {
	if e.PaidBy == userID {
		return true
	}
	for _, s := range e.Splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

// Settlement is the minimal settlement shape needed for balance computation.
type Settlement struct {
	PaidBy     string
	ReceivedBy string
	GroupID    string // empty for a personal settlement
	Amount     float64
}

// Diagnostics counts records the engine refused to fold into a balance
// instead of silently corrupting totals.
type Diagnostics struct {
	// SkippedSplits counts splits dropped for a missing user id, a
	// non-positive amount, or a user already seen in the same expense.
	SkippedSplits int

	// SkippedRecords counts whole expenses or settlements dropped for a
	// missing payer or receiver, or a non-positive settlement amount.
	SkippedRecords int
}

func (d Diagnostics) add(other Diagnostics) Diagnostics {
	d.SkippedSplits += other.SkippedSplits
	d.SkippedRecords += other.SkippedRecords
	return d
}

// pairKey identifies a directional debt: what From owes To.
type pairKey struct {
	From string
	To   string
}

// book is the shared accumulator primitive behind every computation in this
// package. It tracks directional debts between users: debts[{D, C}] is the
// gross amount D owes C. Expenses add debt from each unpaid split holder to
// the payer; settlements subtract debt from the settlement payer to the
// receiver.
type book struct {
	debts map[pairKey]float64
	diag  Diagnostics
}

func newBook() *book {
	return &book{debts: make(map[pairKey]float64)}
}

func (b *book) addExpense(e Expense) {
	if e.PaidBy == "" {
		b.diag.SkippedRecords++
		return
	}
	seen := make(map[string]bool, len(e.Splits))
	for _, s := range e.Splits {
		if s.UserID == "" || s.Amount <= 0 || math.IsNaN(s.Amount) || seen[s.UserID] {
			b.diag.SkippedSplits++
			continue
		}
		seen[s.UserID] = true
		if s.Paid || s.UserID == e.PaidBy {
			// Already settled, or the payer's own share.
			continue
		}
		b.debts[pairKey{From: s.UserID, To: e.PaidBy}] += s.Amount
	}
}

func (b *book) addSettlement(s Settlement) {
	if s.PaidBy == "" || s.ReceivedBy == "" || s.PaidBy == s.ReceivedBy ||
		s.Amount <= 0 || math.IsNaN(s.Amount) {
		b.diag.SkippedRecords++
		return
	}
	b.debts[pairKey{From: s.PaidBy, To: s.ReceivedBy}] -= s.Amount
}

// owed returns the net amount debtor owes creditor after folding both
// directions. Negative means the creditor actually owes the debtor.
func (b *book) owed(debtor, creditor string) float64 {
	return b.debts[pairKey{From: debtor, To: creditor}] -
		b.debts[pairKey{From: creditor, To: debtor}]
}

// counterparties returns every user that shares a debt entry with userID.
func (b *book) counterparties(userID string) []string {
	set := make(map[string]bool)
	for k := range b.debts {
		if k.From == userID {
			set[k.To] = true
		} else if k.To == userID {
			set[k.From] = true
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
