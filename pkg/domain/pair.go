package domain

import (
	"fmt"
	"strings"
)

// Pair selects two components for boiling separation analysis.
type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// ParsePair parses a "First|Second" key.
func ParsePair(key string) (Pair, error) {
	first, second, ok := strings.Cut(key, PairSeparator)
	if !ok || first == "" || second == "" || strings.Contains(second, PairSeparator) {
		return Pair{}, fmt.Errorf("%w: pair %q must look like \"A%sB\"", ErrInvalidParams, key, PairSeparator)
	}
	return Pair{First: first, Second: second}, nil
}

// Key is the wire form used by selectors.
func (p Pair) Key() string { return p.First + PairSeparator + p.Second }

// Label is the display form, second minus first.
func (p Pair) Label() string { return p.Second + " - " + p.First }

// OptionLabel is the selector form, first then second.
func (p Pair) OptionLabel() string { return p.First + " - " + p.Second }

// IsZero reports whether the pair is unset.
func (p Pair) IsZero() bool { return p.First == "" && p.Second == "" }
