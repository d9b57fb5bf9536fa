package excel

import (
	"errors"
	"fmt"
)

// ErrTooLarge indicates the upload exceeds the configured byte limit.
var ErrTooLarge = errors.New("file exceeds the upload size limit")

// ErrTooManyRows indicates the parsed table exceeds the configured row limit.
var ErrTooManyRows = errors.New("file exceeds the row limit")

// UnsupportedFormatError is returned for file names outside csv, txt, xlsx and xls.
type UnsupportedFormatError struct {
	Suffix string
}

func (e *UnsupportedFormatError) Error() string {
	suffix := e.Suffix
	if suffix == "" {
		suffix = "(none)"
	}
	return fmt.Sprintf("unsupported file format %s: please upload a CSV, TXT, XLSX, or XLS file", suffix)
}

// ParseError wraps a failure of the underlying parser.
type ParseError struct {
	Format Format
	Line   int // 1-based line or row number, 0 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s file at line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("failed to parse %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
