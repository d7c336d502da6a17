package ledger

import (
	"math"
	"testing"
	"time"
)

func millis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).UnixMilli()
}

func TestCategoryTotals(t *testing.T) {
	expenses := []Expense{
		{
			PaidBy: "A", Category: "Food", Amount: 60,
			Splits: []Split{
				{UserID: "A", Amount: 30, Paid: true},
				{UserID: "B", Amount: 30},
			},
		},
		{
			PaidBy: "B", Category: "Food", Amount: 40,
			Splits: []Split{
				{UserID: "B", Amount: 20, Paid: true},
				{UserID: "A", Amount: 20},
			},
		},
		{
			PaidBy: "A", Amount: 15, // no category
			Splits: []Split{
				{UserID: "A", Amount: 15, Paid: true},
			},
		},
		{
			PaidBy: "C", Category: "Travel", Amount: 500, // A not involved
			Splits: []Split{
				{UserID: "C", Amount: 500, Paid: true},
			},
		},
	}

	totals := CategoryTotals("A", expenses)
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %+v", totals)
	}
	// A's own shares: Food 30 + 20 = 50, Other 15. Paid flag is irrelevant
	// here: this is spending, not debt.
	if totals[0].Category != "Food" || math.Abs(totals[0].Amount-50) > 1e-9 {
		t.Errorf("top category = %+v, want Food 50", totals[0])
	}
	if totals[1].Category != DefaultCategory || math.Abs(totals[1].Amount-15) > 1e-9 {
		t.Errorf("second category = %+v, want %s 15", totals[1], DefaultCategory)
	}
}

func TestMonthlyTotals(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	expenses := []Expense{
		{
			PaidBy: "A", Date: millis(2024, time.June, 1), Amount: 30,
			Splits: []Split{{UserID: "A", Amount: 30, Paid: true}},
		},
		{
			PaidBy: "A", Date: millis(2024, time.May, 20), Amount: 20,
			Splits: []Split{{UserID: "A", Amount: 20, Paid: true}},
		},
		{
			PaidBy: "A", Date: millis(2024, time.May, 2), Amount: 5,
			Splits: []Split{{UserID: "A", Amount: 5, Paid: true}},
		},
		{
			// No date: falls back to creation time.
			PaidBy: "A", CreatedAt: millis(2024, time.April, 10), Amount: 7,
			Splits: []Split{{UserID: "A", Amount: 7, Paid: true}},
		},
		{
			// Outside the trailing 12-month window.
			PaidBy: "A", Date: millis(2023, time.January, 1), Amount: 99,
			Splits: []Split{{UserID: "A", Amount: 99, Paid: true}},
		},
		{
			// No date at all: dropped.
			PaidBy: "A", Amount: 50,
			Splits: []Split{{UserID: "A", Amount: 50, Paid: true}},
		},
	}

	totals := MonthlyTotals("A", expenses, 12, now)
	if len(totals) != 3 {
		t.Fatalf("expected 3 month buckets, got %+v", totals)
	}

	april := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	june := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	want := []MonthTotal{
		{Month: april, Amount: 7},
		{Month: may, Amount: 25},
		{Month: june, Amount: 30},
	}
	for i, w := range want {
		if totals[i].Month != w.Month || math.Abs(totals[i].Amount-w.Amount) > 1e-9 {
			t.Errorf("bucket %d = %+v, want %+v", i, totals[i], w)
		}
	}
}

func TestTotalSpent(t *testing.T) {
	expenses := []Expense{
		{
			PaidBy: "B", Date: millis(2024, time.March, 3), Amount: 80,
			Splits: []Split{
				{UserID: "B", Amount: 40, Paid: true},
				{UserID: "A", Amount: 40},
			},
		},
		{
			PaidBy: "A", Date: millis(2023, time.December, 31), Amount: 25,
			Splits: []Split{{UserID: "A", Amount: 25, Paid: true}},
		},
	}

	if got := TotalSpent("A", expenses, 2024); math.Abs(got-40) > 1e-9 {
		t.Errorf("TotalSpent 2024 = %v, want 40", got)
	}
	if got := TotalSpent("A", expenses, 2023); math.Abs(got-25) > 1e-9 {
		t.Errorf("TotalSpent 2023 = %v, want 25", got)
	}
}
