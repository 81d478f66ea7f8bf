package loader

import (
	"errors"
	"fmt"
	"io"
)

var ErrInvalidDocument = errors.New("invalid calculator document")

// DocumentError is a problem at a position in a document.
type DocumentError struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func (e *DocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

type ErrorCollector struct {
	// Errors for this document
	Errors []error

	// Max errors before we stop collecting
	// 0 => no limit
	MaxErrors int
}

func (f *ErrorCollector) HasErrors() bool {
	return len(f.Errors) > 0
}

func (f *ErrorCollector) PrintErrors(w io.Writer) {
	for _, err := range f.Errors {
		fmt.Fprintln(w, err)
	}
}

// AddErrors appends errs until MaxErrors is reached. It reports whether there
// is room for more.
func (i *ErrorCollector) AddErrors(errs ...error) bool {
	for _, err := range errs {
		if i.MaxErrors > 0 && len(i.Errors) >= i.MaxErrors {
			return false
		}
		i.Errors = append(i.Errors, err)
	}
	return i.MaxErrors == 0 || len(i.Errors) < i.MaxErrors
}

func (i *ErrorCollector) Errorf(path string, line, col int, format string, args ...any) bool {
	return i.AddErrors(&DocumentError{Path: path, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

// Err joins the collected errors under ErrInvalidDocument, or returns nil.
func (i *ErrorCollector) Err() error {
	if !i.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(i.Errors...))
}

// Problems flattens an error returned by Compile into the individual
// problems it reports.
func Problems(err error) (out []error) {
	if err == nil {
		return nil
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if e != ErrInvalidDocument {
				out = append(out, Problems(e)...)
			}
		}
		return out
	}
	return []error{err}
}
