package lineselect

import (
	"errors"
	"fmt"
)

// Sentinel errors for line selection.
var (
	ErrInvalidSpec    = errors.New("invalid line selection")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrLineOutOfRange = errors.New("line out of range")
	ErrNoMatch        = errors.New("pattern matches no line")
	ErrAmbiguousMatch = errors.New("pattern matches more than one line")
	ErrInvertedRange  = errors.New("range start is after range end")
)

// SelectionError reports a selection that cannot be parsed or resolved.
// Spec holds the offending selection text.
type SelectionError struct {
	Spec string
	Err  error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("line selection %q: %v", e.Spec, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}
