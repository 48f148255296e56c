// Package parsererror defines the error taxonomy of the ingestion pipeline.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySource is wrapped by ParseError when a source yields no rows at all.
var ErrEmptySource = errors.New("source contains no rows")

// ParseError is a structural failure: the byte stream of a source could not be
// tokenized. It is fatal for that source and no rows are produced.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MappingError rejects a column mapping that cannot drive normalization.
type MappingError struct {
	Missing []string // roles without a column
	Unknown []string // mapped header names absent from the source
}

func (e *MappingError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown columns "+strings.Join(e.Unknown, ", "))
	}
	return "incomplete column mapping: " + strings.Join(parts, "; ")
}

// InvalidFormatError represents an input whose kind is not supported.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// RowError explains why one record was dropped during normalization.
type RowError struct {
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s='%s': %s", e.Row, e.Field, e.Value, e.Reason)
}

// IsMappingError reports whether err wraps a MappingError.
func IsMappingError(err error) bool {
	var me *MappingError
	return errors.As(err, &me)
}

// IsParseError reports whether err wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
