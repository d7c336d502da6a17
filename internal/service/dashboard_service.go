package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/splitsmart/splitsmart/internal/ledger"
	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// monthlyWindow is how many trailing months the spending chart covers.
const monthlyWindow = 12

// BalanceRow is one counterparty line on the dashboard, with the display
// name resolved.
type BalanceRow struct {
	UserID string
	Name   string
	Amount float64
}

// BalanceOverview is the user's aggregate position across all scopes.
type BalanceOverview struct {
	YouOwe       float64
	YouAreOwed   float64
	TotalBalance float64
	Owes         []BalanceRow
	OwedBy       []BalanceRow
}

// SpendingOverview is the user's own spending, independent of who paid.
type SpendingOverview struct {
	TotalThisYear float64
	Monthly       []ledger.MonthTotal
	Categories    []ledger.CategoryTotal
}

// Dashboard bundles everything the home screen shows.
type Dashboard struct {
	Balances BalanceOverview
	Spending SpendingOverview
	Groups   []*models.Group
}

// DashboardService computes the user's aggregate views.
type DashboardService struct {
	store storage.Store
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// Balances computes the user's net position against every counterparty,
// across personal and group scopes.
func (s *DashboardService) Balances(ctx context.Context, userID string) (*BalanceOverview, error) {
	expenses, err := s.store.ListExpensesByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := ledger.UserBalances(userID, toLedgerExpenses(expenses), toLedgerSettlements(settlements))
	if balances.Diagnostics.SkippedRecords > 0 || balances.Diagnostics.SkippedSplits > 0 {
		slog.Warn("balance computation skipped malformed records",
			"user_id", userID,
			"skipped_records", balances.Diagnostics.SkippedRecords,
			"skipped_splits", balances.Diagnostics.SkippedSplits,
		)
	}

	ids := make([]string, 0, len(balances.Owes)+len(balances.OwedBy))
	for _, row := range balances.Owes {
		ids = append(ids, row.UserID)
	}
	for _, row := range balances.OwedBy {
		ids = append(ids, row.UserID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	toRows := func(rows []ledger.CounterpartyBalance) []BalanceRow {
		out := make([]BalanceRow, 0, len(rows))
		for _, r := range rows {
			row := BalanceRow{UserID: r.UserID, Amount: r.Amount}
			if u := users[r.UserID]; u != nil {
				row.Name = u.Name
			}
			out = append(out, row)
		}
		return out
	}

	return &BalanceOverview{
		YouOwe:       balances.YouOwe,
		YouAreOwed:   balances.YouAreOwed,
		TotalBalance: balances.TotalBalance,
		Owes:         toRows(balances.Owes),
		OwedBy:       toRows(balances.OwedBy),
	}, nil
}

// Spending computes the user's own spending: calendar-year total, trailing
// monthly series, and category breakdown.
func (s *DashboardService) Spending(ctx context.Context, userID string) (*SpendingOverview, error) {
	expenses, err := s.store.ListExpensesByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := toLedgerExpenses(expenses)
	now := s.now()

	return &SpendingOverview{
		TotalThisYear: ledger.TotalSpent(userID, records, now.Year()),
		Monthly:       ledger.MonthlyTotals(userID, records, monthlyWindow, now),
		Categories:    ledger.CategoryTotals(userID, records),
	}, nil
}

// Overview bundles balances, spending and group memberships for the home
// screen.
func (s *DashboardService) Overview(ctx context.Context, userID string) (*Dashboard, error) {
	balances, err := s.Balances(ctx, userID)
	if err != nil {
		return nil, err
	}
	spending, err := s.Spending(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Balances: *balances,
		Spending: *spending,
		Groups:   groups,
	}, nil
}
