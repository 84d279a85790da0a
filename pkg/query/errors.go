package query

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed expressions. Every error returned by Parse
// wraps exactly one of these; use errors.Is to branch on them.
var (
	ErrInvalidValue      = errors.New("invalid value")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidColumn     = errors.New("invalid column")
	ErrInvalidLimit      = errors.New("invalid limit")
)

// SyntaxError reports the offending part of an expression.
type SyntaxError struct {
	Kind   error  // one of the sentinel errors above
	Text   string // offending substring, may be empty
	Reason string // optional detail
}

func (e *SyntaxError) Error() string {
	var msg string
	switch e.Kind {
	case ErrInvalidValue:
		msg = fmt.Sprintf("value '%s' is invalid", e.Text)
	case ErrInvalidExpression:
		msg = fmt.Sprintf("expression '%s' could not be parsed", e.Text)
	case ErrInvalidID:
		msg = fmt.Sprintf("id '%s' is invalid", e.Text)
	case ErrInvalidName:
		msg = fmt.Sprintf("name '%s' is invalid", e.Text)
	case ErrInvalidColumn:
		msg = fmt.Sprintf("column '%s' is invalid", e.Text)
	case ErrInvalidLimit:
		msg = fmt.Sprintf("limit '%s' is invalid", e.Text)
	default:
		msg = fmt.Sprintf("'%s': %v", e.Text, e.Kind)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

func syntaxError(kind error, text, reason string) *SyntaxError {
	return &SyntaxError{Kind: kind, Text: text, Reason: reason}
}
