package parser

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/extractor"
	"github.com/smartexpense/expense-validator/internal/models"
	"github.com/smartexpense/expense-validator/internal/sanitize"
)

// Amount/type extraction patterns, evaluated in strict priority order.
var (
	// "Debit INR 450.00", "credit: 1.50"
	debitCreditPattern = regexp.MustCompile(
		`(?i)\b(debit|credit)\s*(?:inr)?\s*:?\s*([0-9]{1,3}(?:[.,][0-9]{2,})|[0-9]+(?:[.,][0-9]+)?)`)
	// "INR 450.00" — only meaningful near debit/payment context words
	inrTokenPattern = regexp.MustCompile(`(?i)\bINR\s*([0-9.,]+)`)
	// "39.00(Dr)", "1,250.00 (Cr)"
	parentheticalPattern = regexp.MustCompile(
		`(?i)([0-9]{1,3}(?:[,\s][0-9]{3})*(?:[.,][0-9]+)?)\s*\((Dr|Cr)\)`)

	spaceRuns = regexp.MustCompile(`\s+`)
)

// inrContextWords gate the bare INR-token pattern: without one of these
// in the block, an INR figure is as likely a balance as a transaction.
var inrContextWords = []string{"debit", "debited", "paid to", "paid -", "payment"}

// parsePDF extracts the document text (falling back to page-by-page OCR
// for image-only documents), segments it into blocks, and emits one
// transaction per block that carries a recognizable amount. Blocks
// without one are silently skipped.
func (e *Engine) parsePDF(filename string, r io.Reader) ([]models.Transaction, error) {
	path, err := extractor.SaveTemp(r)
	if err != nil {
		return nil, &FormatError{Stage: "pdf", Err: err}
	}
	defer os.Remove(path)

	text, err := extractor.Text(path)
	if err != nil {
		return nil, &FormatError{Stage: "pdf", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		text, err = extractor.TextOCR(path, e.ocr)
		if err != nil {
			return nil, &FormatError{Stage: "pdf ocr", Err: err}
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return e.parseStatementText(filename, text), nil
}

// parseStatementText runs the block pipeline over already-extracted
// document text.
func (e *Engine) parseStatementText(filename, text string) []models.Transaction {
	text = strings.ReplaceAll(text, " ", " ")

	var txns []models.Transaction
	for _, block := range segmentBlocks(text) {
		normalized := spaceRuns.ReplaceAllString(strings.TrimSpace(block), " ")
		lower := strings.ToLower(normalized)
		// Header/footer noise.
		if strings.Contains(lower, "page") || strings.Contains(lower, "transaction statement for") {
			continue
		}

		amount, txnType, ok := extractBlockAmount(normalized, lower)
		if !ok {
			continue
		}

		t := models.Transaction{
			SourceFile: filename,
			Amount:     amount,
			Type:       txnType,
		}
		t.SetDescription(normalized)
		if d, ok := sanitize.FindDate(normalized); ok {
			t.Date = &d
		}
		e.dict.Categorize(&t)
		txns = append(txns, t)
	}
	return txns
}

// segmentBlocks groups consecutive non-blank lines into blocks. A blank
// line or a line starting with "page" ends the current block; a block's
// internal line breaks collapse to single spaces.
func segmentBlocks(text string) []string {
	var blocks []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			blocks = append(blocks, b.String())
			b.Reset()
		}
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), "page") {
			flush()
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(trimmed)
	}
	flush()
	return blocks
}

// extractBlockAmount applies the pattern table in priority order and
// stops at the first pattern that fires: the explicit debit/credit
// shape, then a bare INR token guarded by context words, then the
// parenthetical Dr/Cr suffix. A matched pattern whose number fails
// sanitization disqualifies the block rather than falling through.
func extractBlockAmount(normalized, lower string) (decimal.Decimal, string, bool) {
	if m := debitCreditPattern.FindStringSubmatch(normalized); m != nil {
		amt, ok := sanitize.Amount(m[2])
		return amt, strings.ToUpper(m[1]), ok
	}

	if containsAnyOf(lower, inrContextWords) {
		if m := inrTokenPattern.FindStringSubmatch(normalized); m != nil {
			amt, ok := sanitize.Amount(m[1])
			txnType := models.TypeDebit
			if strings.Contains(lower, "credit") {
				txnType = models.TypeCredit
			}
			return amt, txnType, ok
		}
	}

	if m := parentheticalPattern.FindStringSubmatch(normalized); m != nil {
		amt, ok := sanitize.Amount(m[1])
		txnType := models.TypeDebit
		if strings.EqualFold(m[2], "cr") {
			txnType = models.TypeCredit
		}
		return amt, txnType, ok
	}

	return decimal.Decimal{}, "", false
}

func containsAnyOf(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
