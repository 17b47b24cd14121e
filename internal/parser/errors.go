package parser

import (
	"errors"
	"fmt"
)

var errNoSheets = errors.New("workbook has no sheets")

// UnsupportedFormatError reports a file extension no parser handles.
// It is fatal to the call; no partial result is produced.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Ext)
}

// FormatError wraps a structural failure in an input file: malformed
// delimited text, a corrupt workbook, or an undecodable document. It is
// fatal to the single parse call that hit it.
type FormatError struct {
	Stage string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s parse error: %v", e.Stage, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
