package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values. An empty Type means the direction is unknown
// and is inferred downstream from the description or category.
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

// MaxDescriptionLen caps descriptions to the storage column width.
const MaxDescriptionLen = 2000

// FallbackCategory is assigned when no categorization rule matches.
const FallbackCategory = "Uncategorized"

// Transaction is a single normalized statement entry. Amount is
// non-negative by convention; the direction lives in Type. After
// categorization CorrectedCategory is always populated, while Date and
// Type may stay empty.
type Transaction struct {
	Date              *time.Time      `json:"date"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Type              string          `json:"type,omitempty"`
	OriginalCategory  string          `json:"originalCategory,omitempty"`
	CorrectedCategory string          `json:"correctedCategory"`
	SourceFile        string          `json:"sourceFile,omitempty"`
}

// SetDescription assigns the description, truncated to MaxDescriptionLen
// code points.
func (t *Transaction) SetDescription(s string) {
	t.Description = Truncate(s, MaxDescriptionLen)
}

// Truncate cuts s to at most max code points.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// CategoryRule is one built-in keyword-to-category hint, applied as a
// fuzzy fallback when the merchant dictionary has no match.
type CategoryRule struct {
	Keyword  string
	Category string
}
