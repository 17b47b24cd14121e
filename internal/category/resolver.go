package category

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/smartexpense/expense-validator/internal/models"
)

// businessWords indicate a merchant rather than an individual. A
// description containing any of them is never treated as a person name.
var businessWords = []string{
	"shop", "store", "services", "station", "bakery", "cafe", "restaurant",
	"fuel", "petrol", "bank", "pvt", "ltd", "enterprise", "payments",
	"payment", "inr", "upi", "transaction", "cashback", "gift", "card",
}

// Categorize resolves CorrectedCategory for t, stopping at the first hit:
// exact/token dictionary match, fuzzy dictionary match, then built-in
// rules guarded by the person-name heuristic, and finally the
// "Uncategorized" fallback. Transfers to individuals fall through the
// built-in rules on purpose.
func (d *Dictionary) Categorize(t *models.Transaction) {
	desc := strings.ToLower(t.Description)
	norm := NormalizeKey(desc)
	tokens := strings.Fields(norm)

	for _, e := range d.entries {
		if e.key == "" {
			continue
		}
		if strings.Contains(norm, e.key) || tokenEquals(tokens, e.key) {
			t.CorrectedCategory = e.category
			break
		}
	}

	if t.CorrectedCategory == "" {
		for _, e := range d.entries {
			if e.key == "" {
				continue
			}
			if fuzzyContains(norm, e.key) {
				t.CorrectedCategory = e.category
				break
			}
		}
	}

	if t.CorrectedCategory == "" && !isLikelyPersonName(desc) {
		for _, r := range builtInRules {
			if fuzzyContains(norm, NormalizeKey(r.Keyword)) {
				t.CorrectedCategory = r.Category
				break
			}
		}
	}

	if strings.TrimSpace(t.CorrectedCategory) == "" {
		t.CorrectedCategory = models.FallbackCategory
	}
}

func tokenEquals(tokens []string, key string) bool {
	for _, tok := range tokens {
		if tok == key {
			return true
		}
	}
	return false
}

// fuzzyContains reports whether text contains keyword as a substring or
// has a token within a small edit distance of it. The tolerance is
// min(2, max(1, len(keyword)/3)); short keywords match very loosely.
func fuzzyContains(text, keyword string) bool {
	if text == "" || keyword == "" {
		return false
	}
	if strings.Contains(text, keyword) {
		return true
	}

	maxDist := len(keyword) / 3
	if maxDist < 1 {
		maxDist = 1
	}
	if maxDist > 2 {
		maxDist = 2
	}
	for _, tok := range nonAlnum.Split(text, -1) {
		if tok == "" {
			continue
		}
		if levenshtein.ComputeDistance(tok, keyword) <= maxDist {
			return true
		}
		if strings.Contains(keyword, tok) || strings.Contains(tok, keyword) {
			return true
		}
	}
	return false
}

// isLikelyPersonName guards the built-in rules against classifying a
// transfer to or from an individual: at most 3 whitespace tokens, letters
// and periods only, no digits, no business keywords.
func isLikelyPersonName(desc string) bool {
	s := strings.TrimSpace(desc)
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, "0123456789") {
		return false
	}
	lower := strings.ToLower(s)
	for _, w := range businessWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	tokens := strings.Fields(s)
	if len(tokens) > 3 {
		return false
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if r != '.' && !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
		}
	}
	return true
}
