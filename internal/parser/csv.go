package parser

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/smartexpense/expense-validator/internal/models"
	"github.com/smartexpense/expense-validator/internal/sanitize"
)

// amountCellJunk strips currency symbols and other noise from amount
// cells before sanitization.
var amountCellJunk = regexp.MustCompile(`[^0-9.,\-]`)

// parseCSV reads delimited text with the first row as a header. Column
// roles are bound by case-insensitive substring match on the header
// cells; a malformed row aborts the whole parse.
func (e *Engine) parseCSV(filename string, r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &FormatError{Stage: "csv", Err: err}
	}
	idx := bindColumns(header)

	var txns []models.Transaction
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{Stage: "csv", Err: err}
		}
		if len(row) == 0 {
			continue
		}

		t := models.Transaction{SourceFile: filename}
		if i, ok := idx["date"]; ok && i < len(row) {
			if d, ok := sanitize.Date(row[i]); ok {
				t.Date = &d
			}
		}
		if i, ok := idx["description"]; ok && i < len(row) {
			t.SetDescription(row[i])
		} else if len(row) > 1 {
			t.SetDescription(row[1])
		} else if len(row) == 1 {
			t.SetDescription(row[0])
		}
		if i, ok := idx["amount"]; ok && i < len(row) {
			raw := amountCellJunk.ReplaceAllString(row[i], "")
			if amt, ok := sanitize.Amount(raw); ok {
				t.Amount = amt
			}
		} else {
			// No amount column: take the first cell the sanitizer accepts.
			for _, cell := range row {
				if amt, ok := sanitize.Amount(cell); ok {
					t.Amount = amt
					break
				}
			}
		}
		if i, ok := idx["type"]; ok && i < len(row) {
			t.Type = row[i]
		}
		if i, ok := idx["category"]; ok && i < len(row) {
			t.OriginalCategory = row[i]
		}

		e.dict.Categorize(&t)
		txns = append(txns, t)
	}
	return txns, nil
}

// bindColumns maps header cells to roles by case-insensitive substring
// match. When several columns match a role the last one wins.
func bindColumns(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(h)
		if strings.Contains(h, "date") {
			idx["date"] = i
		}
		if strings.Contains(h, "desc") || strings.Contains(h, "narration") || strings.Contains(h, "description") {
			idx["description"] = i
		}
		if strings.Contains(h, "amount") || strings.Contains(h, "amt") {
			idx["amount"] = i
		}
		if strings.Contains(h, "type") {
			idx["type"] = i
		}
		if strings.Contains(h, "category") {
			idx["category"] = i
		}
	}
	return idx
}
