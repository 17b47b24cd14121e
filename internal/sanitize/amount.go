// Package sanitize validates raw amount and date tokens scraped from
// statement text. Both helpers report failure through an ok bool instead
// of an error, so row- and block-level callers can skip bad tokens
// without exception machinery.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxLikelyAmount is the plausibility ceiling: a bare integer token with
// a larger magnitude is almost certainly a balance or an account number,
// not a transaction amount.
const MaxLikelyAmount = 1_000_000

var (
	amountJunk      = regexp.MustCompile(`[^0-9.,\-]`)
	maxLikelyAmount = decimal.NewFromInt(MaxLikelyAmount)
)

// Amount parses a raw token into an exact decimal amount. Commas are
// treated as thousands separators and stripped. Tokens with no decimal
// places whose magnitude exceeds MaxLikelyAmount are rejected.
func Amount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(amountJunk.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if strings.Contains(cleaned, ".") {
		v, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Decimal{}, false
		}
		if v.Exponent() >= 0 && v.Abs().GreaterThan(maxLikelyAmount) {
			return decimal.Decimal{}, false
		}
		return v, true
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if n > MaxLikelyAmount || n < -MaxLikelyAmount {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromInt(n), true
}
