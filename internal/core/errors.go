package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrMalformedRow  = errors.New("malformed row")
)

// ParseErrorKind classifies why a CSV row could not be decoded.
type ParseErrorKind int

const (
	InvalidAmount ParseErrorKind = iota + 1
	InvalidDate
	MalformedRow
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidAmount:
		return "invalid amount"
	case InvalidDate:
		return "invalid date"
	case MalformedRow:
		return "malformed row"
	default:
		return "unknown"
	}
}

func (k ParseErrorKind) sentinel() error {
	switch k {
	case InvalidAmount:
		return ErrInvalidAmount
	case InvalidDate:
		return ErrInvalidDate
	default:
		return ErrMalformedRow
	}
}

// ParseError aborts an aggregation. Line is the 1-based line in the input
// where the offending record starts.
type ParseError struct {
	Kind  ParseErrorKind
	Line  int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil && !errors.Is(e.Err, e.Kind.sentinel()) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a ParseError against the sentinel for its kind.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
