package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	err := &ParseError{Source: "table.txt", Row: 12, Column: 3, Msg: "invalid number", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "table.txt: row 12, column 3: invalid number: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	located := &ParseError{Source: "table.txt", Line: 15, Row: 12, Column: 3, Msg: "invalid number"}
	assert.Equal(t, "table.txt:15: row 12, column 3: invalid number", located.Error())

	bare := &ParseError{Source: "table.txt", Row: -1, Column: -1, Msg: "empty"}
	assert.Equal(t, "table.txt: empty", bare.Error())
}

func TestTypedErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("dashboard: %w", &NumericDomainError{Component: "Water", Reason: "no finite point"})
	assert.ErrorIs(t, wrapped, ErrNumericDomain)
	assert.NotErrorIs(t, wrapped, ErrComponentNotFound)

	var nde *NumericDomainError
	assert.True(t, errors.As(wrapped, &nde))
	assert.Equal(t, "Water", nde.Component)

	assert.ErrorIs(t, fmt.Errorf("x: %w", &LookupError{Name: "A"}), ErrComponentNotFound)
}

func TestHooks_Merge(t *testing.T) {
	var calls []string
	a := Hooks{OnComputed: func(_ context.Context, _ *ComputeEvent) { calls = append(calls, "a") }}
	b := Hooks{
		OnComputed:         func(_ context.Context, _ *ComputeEvent) { calls = append(calls, "b") },
		OnComponentSkipped: func(_ context.Context, _ *SkipEvent) { calls = append(calls, "skip") },
	}

	merged := a.Merge(b)
	merged.OnComputed(context.Background(), &ComputeEvent{})
	merged.OnComponentSkipped(context.Background(), &SkipEvent{})
	assert.Nil(t, merged.OnCacheLookup)
	assert.Equal(t, []string{"a", "b", "skip"}, calls)
}
