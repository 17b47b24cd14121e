package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/smartexpense/expense-validator/internal/models"
	"github.com/smartexpense/expense-validator/internal/sanitize"
)

// parseWorkbook reads the first sheet of an XLSX or legacy XLS workbook
// into a string grid and applies the same header-role rules as the
// delimited-text parser. Formula cells contribute their cached evaluated
// value; date-formatted numeric cells arrive as formatted date strings.
func (e *Engine) parseWorkbook(filename string, r io.Reader, ext string) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FormatError{Stage: "workbook", Err: err}
	}

	var rows [][]string
	if ext == "xls" {
		rows, err = readXLS(data)
		if err != nil {
			// Some exports carry an .xls name over XLSX content.
			if alt, altErr := readXLSX(data); altErr == nil {
				rows, err = alt, nil
			}
		}
	} else {
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, &FormatError{Stage: "workbook", Err: err}
	}
	return e.parseGrid(filename, rows), nil
}

// parseGrid turns a header-plus-data string grid into transactions. Every
// data row yields a transaction; cell-level parse failures only leave the
// corresponding field unset.
func (e *Engine) parseGrid(filename string, rows [][]string) []models.Transaction {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]

	var txns []models.Transaction
	for _, row := range rows[1:] {
		t := models.Transaction{SourceFile: filename}
		for col, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			head := ""
			if col < len(header) {
				head = strings.ToLower(header[col])
			}
			switch {
			case strings.Contains(head, "date"):
				if d, ok := sanitize.Date(cell); ok {
					t.Date = &d
				}
			case strings.Contains(head, "desc") || strings.Contains(head, "narration") || strings.Contains(head, "description"):
				t.SetDescription(cell)
			case strings.Contains(head, "category"):
				t.OriginalCategory = cell
			case strings.Contains(head, "type"):
				t.Type = cell
			case strings.Contains(head, "amount") || strings.Contains(head, "amt"):
				// First numeric wins: never overwrite with a later
				// numeric column such as a balance.
				if t.Amount.IsZero() {
					if amt, ok := sanitize.Amount(amountCellJunk.ReplaceAllString(cell, "")); ok {
						t.Amount = amt
					}
				}
			default:
				e.assignUnmapped(&t, cell)
			}
		}
		e.dict.Categorize(&t)
		txns = append(txns, t)
	}
	return txns
}

// assignUnmapped places a cell with no header role: a date shape fills an
// unset date, a numeric token fills an unset amount, any other string
// becomes the description if none is set yet.
func (e *Engine) assignUnmapped(t *models.Transaction, cell string) {
	if t.Date == nil {
		if d, ok := sanitize.Date(cell); ok {
			t.Date = &d
			return
		}
	}
	if t.Amount.IsZero() {
		if amt, ok := sanitize.Amount(cell); ok {
			t.Amount = amt
			return
		}
	}
	if t.Description == "" {
		t.SetDescription(cell)
	}
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	return f.GetRows(sheets[0])
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errNoSheets
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheets
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		var cells []string
		for col := 0; col < row.LastCol(); col++ {
			cells = append(cells, row.Col(col))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
