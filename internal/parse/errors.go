// Package parse converts raw statement fields into dates and exact decimal
// amounts, and defines the error taxonomy shared by the import pipeline.
package parse

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a recoverable input problem.
type Kind string

const (
	KindInvalidDate    Kind = "invalid_date"
	KindInvalidAmount  Kind = "invalid_amount"
	KindMissingColumns Kind = "missing_columns"
	KindFileNotFound   Kind = "file_not_found"
	KindUnreadable     Kind = "unreadable"
)

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingColumns = errors.New("missing columns")
	ErrFileNotFound   = errors.New("file not found")
	ErrUnreadable     = errors.New("unreadable file")
)

// Err returns the sentinel error for k.
func (k Kind) Err() error {
	switch k {
	case KindInvalidDate:
		return ErrInvalidDate
	case KindInvalidAmount:
		return ErrInvalidAmount
	case KindMissingColumns:
		return ErrMissingColumns
	case KindFileNotFound:
		return ErrFileNotFound
	case KindUnreadable:
		return ErrUnreadable
	}
	return nil
}

// Label is the human-readable form used in summaries.
func (k Kind) Label() string {
	if err := k.Err(); err != nil {
		return err.Error()
	}
	return string(k)
}

// RowError describes a single row that was skipped.
type RowError struct {
	File  string
	Line  int
	Kind  Kind
	Value string
	Err   error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Kind.Label(), e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.File == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
}

func (e *RowError) Unwrap() []error {
	return nonNil(e.Kind.Err(), e.Err)
}

// At returns a copy of e located at file:line.
func (e *RowError) At(file string, line int) RowError {
	c := *e
	c.File = file
	c.Line = line
	return c
}

// FileError describes a whole input file that was skipped.
type FileError struct {
	File string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.File, e.Kind.Label())
	}
	return fmt.Sprintf("%s: %s: %v", e.File, e.Kind.Label(), e.Err)
}

func (e *FileError) Unwrap() []error {
	return nonNil(e.Kind.Err(), e.Err)
}

// KindOf maps any error onto the taxonomy. Unknown errors map to KindUnreadable.
func KindOf(err error) Kind {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr.Kind
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidDate):
		return KindInvalidDate
	case errors.Is(err, ErrInvalidAmount):
		return KindInvalidAmount
	case errors.Is(err, ErrMissingColumns):
		return KindMissingColumns
	case errors.Is(err, ErrFileNotFound), errors.Is(err, fs.ErrNotExist):
		return KindFileNotFound
	}
	return KindUnreadable
}

func nonNil(errs ...error) []error {
	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
