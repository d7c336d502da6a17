package ledger

import "math"

// PairwiseNet computes the net balance between exactly two users across their
// personal (non-group) expenses and settlements.
//
// Positive means userB owes userA; negative means userA owes userB. Expenses
// that do not involve both users contribute nothing, as do group-scoped
// records. Results with magnitude below SnapThreshold snap to exactly zero.
func PairwiseNet(userA, userB string, expenses []Expense, settlements []Settlement) float64 {
	b := newBook()

	for _, e := range expenses {
		if e.GroupID != "" {
			continue
		}
		// Only expenses where both users are involved can move the pair's
		// balance; an expense between userA and a third party says nothing
		// about userB.
		if !e.Involves(userA) || !e.Involves(userB) {
			continue
		}
		b.addExpense(e)
	}

	for _, s := range settlements {
		if s.GroupID != "" {
			continue
		}
		if !betweenPair(s, userA, userB) {
			continue
		}
		b.addSettlement(s)
	}

	net := b.owed(userB, userA)
	if math.Abs(net) < SnapThreshold {
		return 0
	}
	return net
}

func betweenPair(s Settlement, userA, userB string) bool {
	return (s.PaidBy == userA && s.ReceivedBy == userB) ||
		(s.PaidBy == userB && s.ReceivedBy == userA)
}
