// Package report computes aggregate figures over parsed transactions and
// scrapes the printed summary lines out of raw statement text.
package report

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/sanitize"
)

// Summary result keys.
const (
	KeyTotalWithdrawal = "total_withdrawal"
	KeyTotalDeposit    = "total_deposit"
	KeyOpeningBalance  = "opening_balance"
	KeyClosingBalance  = "closing_balance"
)

// summaryPatterns anchor on the literal phrases statements print their
// aggregate figures under. Each pattern is independent; one not matching
// simply leaves its key absent.
var summaryPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{KeyTotalWithdrawal, regexp.MustCompile(`(?i)Total\s+Withdrawal\s+Amount\s*[:\-]?\s*([0-9,]+(?:[.,][0-9]+)?)\s*(?:\(Dr\))?`)},
	{KeyTotalDeposit, regexp.MustCompile(`(?i)Total\s+Deposit\s+Amount\s*[:\-]?\s*([0-9,]+(?:[.,][0-9]+)?)\s*(?:\(Cr\))?`)},
	{KeyOpeningBalance, regexp.MustCompile(`(?i)Opening\s+Balance\s*[:\-]?\s*([0-9,]+(?:[.,][0-9]+)?)\s*(?:\(Cr\))?`)},
	{KeyClosingBalance, regexp.MustCompile(`(?i)Closing\s+Balance\s*[:\-]?\s*([0-9,]+(?:[.,][0-9]+)?)\s*(?:\(Cr\))?`)},
}

// ExtractSummary pulls the printed opening/closing balance and total
// withdrawal/deposit figures out of raw statement text. It works on the
// whole text, independent of block segmentation.
func ExtractSummary(text string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, p := range summaryPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := sanitize.Amount(m[1]); ok {
			out[p.key] = v
		}
	}
	return out
}
