package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/models"
)

// Totals holds debit/credit sums over a transaction collection.
// Net is credit minus debit.
type Totals struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Net         decimal.Decimal `json:"net"`
}

// ComputeTotals sums debits and credits over txns, optionally windowed by
// an inclusive [from, to] date range. Undated transactions are excluded
// whenever a bound is supplied. A transaction whose direction cannot be
// resolved contributes to neither bucket.
func ComputeTotals(txns []models.Transaction, from, to *time.Time) Totals {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, t := range txns {
		if from != nil && (t.Date == nil || t.Date.Before(*from)) {
			continue
		}
		if to != nil && (t.Date == nil || t.Date.After(*to)) {
			continue
		}
		switch effectiveType(t) {
		case models.TypeDebit:
			totalDebit = totalDebit.Add(t.Amount)
		case models.TypeCredit:
			totalCredit = totalCredit.Add(t.Amount)
		}
	}

	return Totals{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Net:         totalCredit.Sub(totalDebit),
	}
}

// SummarizeByCategory sums amounts keyed by corrected category.
func SummarizeByCategory(txns []models.Transaction) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		cat := t.CorrectedCategory
		if cat == "" {
			cat = models.FallbackCategory
		}
		sums[cat] = sums[cat].Add(t.Amount)
	}
	return sums
}

// effectiveType resolves the debit/credit direction: the stored type when
// recognizable, otherwise an inference from description and category
// keywords. Returns "" when no signal resolves.
func effectiveType(t models.Transaction) string {
	switch strings.ToUpper(strings.TrimSpace(t.Type)) {
	case "DEBIT", "DR", "D":
		return models.TypeDebit
	case "CREDIT", "CR":
		return models.TypeCredit
	}
	return inferType(t)
}

func inferType(t models.Transaction) string {
	desc := strings.ToLower(t.Description)
	switch {
	case strings.Contains(desc, "debit"),
		strings.Contains(desc, "debited"),
		strings.Contains(desc, "paid to"),
		strings.Contains(desc, "paid -"),
		strings.Contains(desc, "dr"):
		return models.TypeDebit
	case strings.Contains(desc, "credit"),
		strings.Contains(desc, "received from"),
		strings.Contains(desc, "credited"):
		return models.TypeCredit
	}

	cat := strings.ToLower(t.CorrectedCategory)
	if strings.Contains(cat, "salary") || strings.Contains(cat, "credit") || strings.Contains(cat, "income") {
		return models.TypeCredit
	}
	return ""
}
