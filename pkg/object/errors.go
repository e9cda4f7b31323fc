package object

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("object not found")
	ErrTypeMismatch    = errors.New("object type mismatch")
	ErrMalformedTree   = errors.New("malformed tree")
	ErrMalformedCommit = errors.New("malformed commit")
	ErrClosed          = errors.New("object store closed")
)

// DecodeError describes a structural violation found while decoding a tree
// or commit. Kind is ErrMalformedTree or ErrMalformedCommit; Line is the
// 1-based line number, or 0 when the problem is not tied to one line.
type DecodeError struct {
	Kind   error
	Line   int
	Reason string
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s", e.Kind, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func treeError(line int, format string, args ...any) error {
	return &DecodeError{Kind: ErrMalformedTree, Line: line, Reason: fmt.Sprintf(format, args...)}
}

func commitError(line int, format string, args ...any) error {
	return &DecodeError{Kind: ErrMalformedCommit, Line: line, Reason: fmt.Sprintf(format, args...)}
}
