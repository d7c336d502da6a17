package ledger

import "sort"

// CounterpartyBalance is one row of a per-user balance breakdown.
type CounterpartyBalance struct {
	UserID string
	Amount float64 // always positive; direction given by the owning list
}

// Balances is a user's aggregate position across every scope, personal and
// group alike.
//
// YouAreOwed always equals the sum of OwedBy amounts and YouOwe the sum of
// Owes amounts: both totals are re-derived from the final netted lists rather
// than accumulated separately, so the headline numbers cannot drift from the
// detail rows.
type Balances struct {
	YouOwe       float64
	YouAreOwed   float64
	TotalBalance float64 // YouAreOwed - YouOwe

	Owes   []CounterpartyBalance // people you owe, descending by amount
	OwedBy []CounterpartyBalance // people who owe you, descending by amount

	Diagnostics Diagnostics
}

// UserBalances computes one user's aggregate balance against every
// counterparty. Expenses and settlements from all scopes are folded in;
// records not involving the user are ignored. Counterparties whose net
// magnitude falls below DustThreshold are dropped.
func UserBalances(userID string, expenses []Expense, settlements []Settlement) Balances {
	b := newBook()

	for _, e := range expenses {
		if !e.Involves(userID) {
			continue
		}
		b.addExpense(e)
	}
	for _, s := range settlements {
		if s.PaidBy != userID && s.ReceivedBy != userID {
			continue
		}
		b.addSettlement(s)
	}

	var out Balances
	for _, other := range b.counterparties(userID) {
		net := b.owed(other, userID) // positive: they owe the user
		switch {
		case net > DustThreshold:
			out.OwedBy = append(out.OwedBy, CounterpartyBalance{UserID: other, Amount: net})
		case net < -DustThreshold:
			out.Owes = append(out.Owes, CounterpartyBalance{UserID: other, Amount: -net})
		}
	}

	sortCounterparties(out.OwedBy)
	sortCounterparties(out.Owes)

	for _, row := range out.OwedBy {
		out.YouAreOwed += row.Amount
	}
	for _, row := range out.Owes {
		out.YouOwe += row.Amount
	}
	out.TotalBalance = out.YouAreOwed - out.YouOwe
	out.Diagnostics = b.diag
	return out
}

func sortCounterparties(rows []CounterpartyBalance) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].UserID < rows[j].UserID
	})
}
