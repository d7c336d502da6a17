package ledger

import (
	"sort"
	"time"
)

// DefaultCategory is the bucket for expenses recorded without a category.
const DefaultCategory = "Other"

// CategoryTotal is a user's own spending in one category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// MonthTotal is a user's own spending in one calendar month. Month is the
// first instant of the month in epoch milliseconds (UTC).
type MonthTotal struct {
	Month  int64
	Amount float64
}

// CategoryTotals sums the user's own share of each expense per category,
// descending by amount. A share counts whether or not it is marked paid:
// this answers "how much did I spend", not "what do I owe".
func CategoryTotals(userID string, expenses []Expense) []CategoryTotal {
	totals := make(map[string]float64)
	for _, e := range expenses {
		share, ok := ownShare(e, userID)
		if !ok {
			continue
		}
		category := e.Category
		if category == "" {
			category = DefaultCategory
		}
		totals[category] += share
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyTotals sums the user's own share of each expense per calendar month
// over the trailing window ending at now, ascending by month. An expense
// missing its date falls back to its record creation time; records missing
// both are dropped.
func MonthlyTotals(userID string, expenses []Expense, months int, now time.Time) []MonthTotal {
	startOfCurrent := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := startOfCurrent.AddDate(0, -(months - 1), 0)

	totals := make(map[int64]float64)
	for _, e := range expenses {
		share, ok := ownShare(e, userID)
		if !ok {
			continue
		}
		ts := effectiveDate(e)
		if ts == 0 {
			continue
		}
		t := time.UnixMilli(ts).UTC()
		if t.Before(windowStart) || !t.Before(startOfCurrent.AddDate(0, 1, 0)) {
			continue
		}
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
		totals[month] += share
	}

	out := make([]MonthTotal, 0, len(totals))
	for month, amount := range totals {
		out = append(out, MonthTotal{Month: month, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TotalSpent sums the user's own share of expenses dated within the given
// calendar year (UTC).
func TotalSpent(userID string, expenses []Expense, year int) float64 {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	var total float64
	for _, e := range expenses {
		share, ok := ownShare(e, userID)
		if !ok {
			continue
		}
		ts := effectiveDate(e)
		if ts < start || ts >= end {
			continue
		}
		total += share
	}
	return total
}

func ownShare(e Expense, userID string) (float64, bool) {
	for _, s := range e.Splits {
		if s.UserID == userID && s.Amount > 0 {
			return s.Amount, true
		}
	}
	return 0, false
}

func effectiveDate(e Expense) int64 {
	if e.Date != 0 {
		return e.Date
	}
	return e.CreatedAt
}
