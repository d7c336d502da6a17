package ledger

import "sort"

// MemberNet is one group member's multilateral net position: positive means
// the group owes them, negative means they owe the group.
type MemberNet struct {
	UserID string
	Net    float64
}

// Edge is one resolved directional debt between two group members after
// netting their mutual obligations.
type Edge struct {
	From   string // debtor
	To     string // creditor
	Amount float64
}

// Sheet is a group's full balance resolution.
type Sheet struct {
	// Members holds one row per group member, in member order, including
	// members with a zero net so display rows stay stable.
	Members []MemberNet

	// Edges is the who-owes-whom list, descending by amount.
	Edges []Edge

	Diagnostics Diagnostics
}

// GroupSheet computes the balance sheet for a group from its member list and
// its own expenses and settlements (callers pass records already scoped to
// the group).
//
// The per-member nets always sum to zero: every expense and settlement
// redistributes value between members, never creates it.
func GroupSheet(memberIDs []string, expenses []Expense, settlements []Settlement) Sheet {
	b := newBook()
	for _, e := range expenses {
		b.addExpense(e)
	}
	for _, s := range settlements {
		b.addSettlement(s)
	}

	sheet := Sheet{Members: make([]MemberNet, len(memberIDs)), Diagnostics: b.diag}

	for i, id := range memberIDs {
		var net float64
		for _, other := range b.counterparties(id) {
			net += b.owed(other, id)
		}
		sheet.Members[i] = MemberNet{UserID: id, Net: net}
	}

	// Full O(n²) pairwise resolution; group sizes are tens, not thousands.
	for i := 0; i < len(memberIDs); i++ {
		for j := i + 1; j < len(memberIDs); j++ {
			a, c := memberIDs[i], memberIDs[j]
			net := b.owed(a, c) // positive: a owes c
			switch {
			case net > DustThreshold:
				sheet.Edges = append(sheet.Edges, Edge{From: a, To: c, Amount: net})
			case net < -DustThreshold:
				sheet.Edges = append(sheet.Edges, Edge{From: c, To: a, Amount: -net})
			}
		}
	}

	sort.Slice(sheet.Edges, func(i, j int) bool {
		if sheet.Edges[i].Amount != sheet.Edges[j].Amount {
			return sheet.Edges[i].Amount > sheet.Edges[j].Amount
		}
		if sheet.Edges[i].From != sheet.Edges[j].From {
			return sheet.Edges[i].From < sheet.Edges[j].From
		}
		return sheet.Edges[i].To < sheet.Edges[j].To
	})

	return sheet
}
