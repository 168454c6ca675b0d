package domain

import (
	"errors"
	"fmt"
)

// ErrParse is returned when the coefficient table cannot be read.
var ErrParse = errors.New("parse error")

// ErrComponentNotFound is returned when a component name is not present in the table.
var ErrComponentNotFound = errors.New("component not found")

// ErrNumericDomain is returned when an evaluation produces no usable finite value.
var ErrNumericDomain = errors.New("numeric domain error")

// ErrInvalidParams is returned when interactive parameters or grids are malformed.
var ErrInvalidParams = errors.New("invalid parameters")

// ErrCacheMiss is returned by result caches when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ParseError describes a malformed coefficient table.
// Row and Column are 0-indexed data coordinates; -1 means not applicable.
// Line is the 1-based physical line in the source, 0 when unknown; it differs
// from Row when the source has blank lines.
type ParseError struct {
	Source string
	Line   int
	Row    int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Row >= 0 {
		loc = fmt.Sprintf("%s: row %d", loc, e.Row)
	}
	if e.Column >= 0 {
		loc = fmt.Sprintf("%s, column %d", loc, e.Column)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError reports a component name missing from the table.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("component %q not found", e.Name)
}

func (e *LookupError) Is(target error) bool { return target == ErrComponentNotFound }

// NumericDomainError reports a component whose evaluation yields non-finite values.
type NumericDomainError struct {
	Component string
	Reason    string
}

func (e *NumericDomainError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("numeric domain error: %s", e.Reason)
	}
	return fmt.Sprintf("numeric domain error for %q: %s", e.Component, e.Reason)
}

func (e *NumericDomainError) Is(target error) bool { return target == ErrNumericDomain }
