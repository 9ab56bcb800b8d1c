package svg

import (
	"errors"
	"fmt"
)

// ErrMissingAttribute is wrapped by a ParseError when a required attribute is absent.
var ErrMissingAttribute = errors.New("missing attribute")

// ParseError reports a <text> attribute whose value does not match the
// schema the converter is expected to emit.
type ParseError struct {
	// Index is the position of the <text> element in document order
	Index int

	// Attr is the attribute or style property that failed
	Attr string

	// Value is the raw value found ("" when missing)
	Value string

	// Reason describes what was wrong with the value
	Reason string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("svg text %d: %s %q: %s", e.Index, e.Attr, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}
