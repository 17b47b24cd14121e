// Package parser turns raw statement files into normalized, categorized
// transactions. A format-specific parser is selected by file extension;
// every parser runs each record through the shared categorization
// dictionary and the amount/date sanitizers before returning it.
package parser

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/category"
	"github.com/smartexpense/expense-validator/internal/extractor"
	"github.com/smartexpense/expense-validator/internal/models"
	"github.com/smartexpense/expense-validator/internal/report"
)

// Engine is a stateless-per-call parsing engine. The merchant dictionary
// is its only lifetime state, loaded once and read-only afterwards, so a
// single Engine serves concurrent uploads.
type Engine struct {
	dict *category.Dictionary
	ocr  extractor.OCR
}

// NewEngine builds an engine around a loaded dictionary and an OCR
// collaborator. ocr may be nil when scanned documents are not expected.
func NewEngine(dict *category.Dictionary, ocr extractor.OCR) *Engine {
	return &Engine{dict: dict, ocr: ocr}
}

// Parse dispatches on the file extension (case-insensitive) and returns
// the finished transaction list. Unknown extensions fail with
// *UnsupportedFormatError and no partial result.
func (e *Engine) Parse(filename string, r io.Reader) ([]models.Transaction, error) {
	switch ext := normalizeExt(filename); ext {
	case "csv":
		return e.parseCSV(filename, r)
	case "xlsx", "xls":
		return e.parseWorkbook(filename, r, ext)
	case "pdf":
		return e.parsePDF(filename, r)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// ExtractSummary reads the printed aggregate figures (opening/closing
// balance, total withdrawal/deposit) from a statement document's raw
// text. Only figures actually present in the document appear in the
// result.
func (e *Engine) ExtractSummary(filename string, r io.Reader) (map[string]decimal.Decimal, error) {
	if ext := normalizeExt(filename); ext != "pdf" {
		return nil, &UnsupportedFormatError{Ext: ext}
	}
	path, err := extractor.SaveTemp(r)
	if err != nil {
		return nil, &FormatError{Stage: "pdf", Err: err}
	}
	defer os.Remove(path)

	text, err := extractor.Text(path)
	if err != nil {
		return nil, &FormatError{Stage: "pdf", Err: err}
	}
	return report.ExtractSummary(text), nil
}

func normalizeExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
