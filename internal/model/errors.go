package model

import "errors"

// ParseError reports malformed or missing input. It is fatal for an assessment.
type ParseError struct {
	Field string
	Value string
	Msg   string
}

func (e *ParseError) Error() string {
	return e.Msg
}

// NewParseError builds a ParseError for a missing or invalid field.
func NewParseError(field, msg string) *ParseError {
	return &ParseError{Field: field, Msg: msg}
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
