package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/category"
	"github.com/smartexpense/expense-validator/internal/models"
	"github.com/smartexpense/expense-validator/internal/writer"
)

func testEngine() *Engine {
	return NewEngine(category.Builtins(), nil)
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount literal %q: %v", s, err)
	}
	return v
}

func TestParseDispatchUnsupportedFormat(t *testing.T) {
	e := testEngine()
	_, err := e.Parse("statement.docx", strings.NewReader("irrelevant"))
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if ufe.Ext != "docx" {
		t.Errorf("ext = %q, want docx", ufe.Ext)
	}
}

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"Txn Date,Narration,Amount (INR),Type,Category",
		"31/01/2025,Paid to ZOMATO Bangalore,INR 450.00,DEBIT,Eating Out",
		"2025-02-01,Salary credited,\"55,000\",CREDIT,",
	}, "\n")

	e := testEngine()
	txns, err := e.Parse("statement.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	first := txns[0]
	if first.Date == nil || !first.Date.Equal(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2025-01-31", first.Date)
	}
	if first.Description != "Paid to ZOMATO Bangalore" {
		t.Errorf("description = %q", first.Description)
	}
	if first.Amount.String() != "450" {
		t.Errorf("amount = %s, want 450", first.Amount)
	}
	if first.Type != "DEBIT" {
		t.Errorf("type = %q", first.Type)
	}
	if first.OriginalCategory != "Eating Out" {
		t.Errorf("original category = %q", first.OriginalCategory)
	}
	if first.CorrectedCategory != "Food" {
		t.Errorf("corrected category = %q, want Food", first.CorrectedCategory)
	}
	if first.SourceFile != "statement.csv" {
		t.Errorf("source file = %q", first.SourceFile)
	}

	second := txns[1]
	if second.Amount.String() != "55000" {
		t.Errorf("amount = %s, want 55000", second.Amount)
	}
	if second.CorrectedCategory == "" {
		t.Error("corrected category must be populated")
	}
}

func TestParseCSVDescriptionFallback(t *testing.T) {
	// No description-role header: the second column is used.
	input := "Posted On,Details,Value\n01/11/2025,ATM cash,500\n"

	e := testEngine()
	txns, err := e.Parse("fallback.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions", len(txns))
	}
	if txns[0].Description != "ATM cash" {
		t.Errorf("description = %q, want second column", txns[0].Description)
	}
}

func TestParseCSVAmountCellScan(t *testing.T) {
	// No amount-role header: the first sanitizable cell wins, and the
	// over-ceiling account number is skipped.
	input := "Date,Narration,Reference,Value\n31/01/2025,Transfer,9876543210,725.50\n"

	e := testEngine()
	txns, err := e.Parse("scan.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txns[0].Amount.String() != "725.5" {
		t.Errorf("amount = %s, want 725.5", txns[0].Amount)
	}
}

func TestParseCSVMalformedAborts(t *testing.T) {
	input := "Date,Description,Amount\n\"unclosed,500\n"

	e := testEngine()
	_, err := e.Parse("broken.csv", strings.NewReader(input))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	date := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	orig := []models.Transaction{
		{
			Date:              &date,
			Description:       "Paid to Amazon Pay, order #42",
			Type:              models.TypeDebit,
			OriginalCategory:  "Online",
			CorrectedCategory: "Shopping",
		},
		{
			Description:       "Salary",
			Type:              models.TypeCredit,
			CorrectedCategory: "Income",
		},
	}
	orig[0].Amount = mustAmount(t, "450.75")
	orig[1].Amount = mustAmount(t, "55000")

	data, err := writer.Serialize(orig)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	e := testEngine()
	back, err := e.Parse("export.csv", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(back) != len(orig) {
		t.Fatalf("got %d transactions, want %d", len(back), len(orig))
	}
	for i := range orig {
		if (orig[i].Date == nil) != (back[i].Date == nil) {
			t.Errorf("txn %d: date presence changed", i)
		}
		if orig[i].Date != nil && !orig[i].Date.Equal(*back[i].Date) {
			t.Errorf("txn %d: date %v != %v", i, orig[i].Date, back[i].Date)
		}
		if !orig[i].Amount.Equal(back[i].Amount) {
			t.Errorf("txn %d: amount %s != %s", i, orig[i].Amount, back[i].Amount)
		}
		if orig[i].Type != back[i].Type {
			t.Errorf("txn %d: type %q != %q", i, orig[i].Type, back[i].Type)
		}
		if back[i].Description == "" {
			t.Errorf("txn %d: description lost", i)
		}
	}
}
