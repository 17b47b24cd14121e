// Package writer renders a transaction collection back to delimited
// text.
package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/smartexpense/expense-validator/internal/models"
)

// AttachmentFilename is the fixed name used when the CSV export is
// served as a download.
const AttachmentFilename = "corrected_transactions.csv"

var header = []string{"Date", "Description", "Amount", "Type", "OriginalCategory", "CorrectedCategory"}

// Serialize renders transactions as a UTF-8 CSV byte stream: a fixed
// six-column header, ISO dates (empty when unset), plain decimal
// amounts, and RFC 4180 quoting for fields containing commas, quotes,
// or newlines.
func Serialize(txns []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range txns {
		date := ""
		if t.Date != nil {
			date = t.Date.Format("2006-01-02")
		}
		row := []string{
			date,
			t.Description,
			t.Amount.String(),
			t.Type,
			t.OriginalCategory,
			t.CorrectedCategory,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
