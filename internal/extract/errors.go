package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse matches every failure returned by Extract.
var ErrParse = errors.New("parse failure")

// Failure kinds. Use errors.Is to tell them apart.
var (
	ErrNoArrayFound       = errors.New("no JSON array found")
	ErrMalformedJSON      = errors.New("malformed JSON")
	ErrNotAnArray         = errors.New("JSON value is not an array")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidOptions     = errors.New("invalid options")
	ErrAnswerNotInOptions = errors.New("answer not in options")
)

// ParseError carries the failure kind plus whatever context is known: the
// element index, the offending field, and for answer mismatches the answer and
// its options.
type ParseError struct {
	Kind    error
	Index   int // -1 when the failure is not tied to an element
	Field   string
	Answer  string
	Options []string
	Err     error // underlying decoder error, MalformedJSON only
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrParse.Error())
	sb.WriteString(": ")
	sb.WriteString(e.Kind.Error())
	if e.Index >= 0 {
		fmt.Fprintf(&sb, " at index %d", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " (field %q)", e.Field)
	}
	if errors.Is(e.Kind, ErrAnswerNotInOptions) {
		fmt.Fprintf(&sb, ": answer %q, options %q", e.Answer, e.Options)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ParseError) Unwrap() []error {
	errs := []error{ErrParse, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func failure(kind error, index int) *ParseError {
	return &ParseError{Kind: kind, Index: index}
}
