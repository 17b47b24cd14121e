package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/models"
)

func txn(date *time.Time, desc, amount, typ, category string) models.Transaction {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:              date,
		Description:       desc,
		Amount:            amt,
		Type:              typ,
		CorrectedCategory: category,
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeTotals(t *testing.T) {
	txns := []models.Transaction{
		txn(day(2025, time.November, 1), "Paid to Amazon", "500", "DEBIT", "Shopping"),
		txn(day(2025, time.November, 3), "Refund", "200", "CREDIT", "Shopping"),
		txn(day(2025, time.November, 5), "Unknown direction", "999", "", ""),
	}

	got := ComputeTotals(txns, nil, nil)
	if got.TotalDebit.String() != "500" {
		t.Errorf("TotalDebit = %s, want 500", got.TotalDebit)
	}
	if got.TotalCredit.String() != "200" {
		t.Errorf("TotalCredit = %s, want 200", got.TotalCredit)
	}
	if got.Net.String() != "-300" {
		t.Errorf("Net = %s, want -300", got.Net)
	}
}

func TestComputeTotalsDateWindow(t *testing.T) {
	txns := []models.Transaction{
		txn(day(2025, time.October, 30), "Paid to Ola", "100", "DEBIT", "Travel"),
		txn(day(2025, time.November, 2), "Paid to Uber", "250", "DEBIT", "Travel"),
		txn(day(2025, time.November, 9), "Paid to Swiggy", "400", "DEBIT", "Food"),
		txn(nil, "Undated debit", "50", "DEBIT", ""),
	}

	got := ComputeTotals(txns, day(2025, time.November, 1), day(2025, time.November, 7))
	// Only the Nov 2 transaction falls inside the inclusive window; the
	// undated one is excluded because a bound was supplied.
	if got.TotalDebit.String() != "250" {
		t.Errorf("TotalDebit = %s, want 250", got.TotalDebit)
	}

	unbounded := ComputeTotals(txns, nil, nil)
	if unbounded.TotalDebit.String() != "800" {
		t.Errorf("unbounded TotalDebit = %s, want 800", unbounded.TotalDebit)
	}
}

func TestComputeTotalsBoundaryInclusive(t *testing.T) {
	txns := []models.Transaction{
		txn(day(2025, time.November, 1), "Paid to Zomato", "75", "DEBIT", "Food"),
	}
	got := ComputeTotals(txns, day(2025, time.November, 1), day(2025, time.November, 1))
	if got.TotalDebit.String() != "75" {
		t.Errorf("TotalDebit = %s, want 75 (bounds are inclusive)", got.TotalDebit)
	}
}

func TestEffectiveType(t *testing.T) {
	tests := []struct {
		name string
		txn  models.Transaction
		want string
	}{
		{"explicit debit", txn(nil, "", "1", "debit", ""), models.TypeDebit},
		{"abbreviated dr", txn(nil, "", "1", "Dr", ""), models.TypeDebit},
		{"abbreviated cr", txn(nil, "", "1", "CR", ""), models.TypeCredit},
		{"paid to phrase", txn(nil, "Paid to Amazon Pay", "1", "", ""), models.TypeDebit},
		{"credited phrase", txn(nil, "Amount credited via NEFT", "1", "", ""), models.TypeCredit},
		{"salary category", txn(nil, "Monthly payout", "1", "", "Salary"), models.TypeCredit},
		{"no signal", txn(nil, "Misc", "1", "", "Shopping"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effectiveType(tt.txn); got != tt.want {
				t.Errorf("effectiveType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizeByCategory(t *testing.T) {
	txns := []models.Transaction{
		txn(nil, "", "450", "DEBIT", "Food"),
		txn(nil, "", "150", "DEBIT", "Food"),
		txn(nil, "", "99", "DEBIT", ""),
	}
	sums := SummarizeByCategory(txns)
	if len(sums) != 2 {
		t.Fatalf("got %d categories, want 2", len(sums))
	}
	if sums["Food"].String() != "600" {
		t.Errorf("Food = %s, want 600", sums["Food"])
	}
	if sums[models.FallbackCategory].String() != "99" {
		t.Errorf("%s = %s, want 99", models.FallbackCategory, sums[models.FallbackCategory])
	}
}
