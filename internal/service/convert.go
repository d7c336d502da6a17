package service

import (
	"github.com/splitsmart/splitsmart/internal/ledger"
	"github.com/splitsmart/splitsmart/internal/models"
)

// toLedgerExpenses converts stored expenses to the engine's input records.
// Expense dates are epoch millis; CreatedAt is Unix seconds and is converted
// so the engine's date fallback stays in one unit.
func toLedgerExpenses(expenses []*models.Expense) []ledger.Expense {
	out := make([]ledger.Expense, 0, len(expenses))
	for _, e := range expenses {
		splits := make([]ledger.Split, 0, len(e.Splits))
		for _, s := range e.Splits {
			splits = append(splits, ledger.Split{
				UserID: s.UserID,
				Amount: s.Amount,
				Paid:   s.Paid,
			})
		}
		out = append(out, ledger.Expense{
			PaidBy:    e.PaidByUserID,
			GroupID:   e.GroupID,
			Category:  e.Category,
			Amount:    e.Amount,
			Date:      e.Date,
			CreatedAt: e.CreatedAt * 1000,
			Splits:    splits,
		})
	}
	return out
}

// toLedgerSettlements converts stored settlements to the engine's input
// records.
func toLedgerSettlements(settlements []*models.Settlement) []ledger.Settlement {
	out := make([]ledger.Settlement, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, ledger.Settlement{
			PaidBy:     s.PaidByUserID,
			ReceivedBy: s.ReceivedByUserID,
			GroupID:    s.GroupID,
			Amount:     s.Amount,
		})
	}
	return out
}
