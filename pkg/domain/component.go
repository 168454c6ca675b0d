package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// Coefficients are the six fitted parameters of the extended Antoine equation
//
//	ln(P) = A + B/(T+C) + D*ln(T) + E*T^F
//
// T and P are in the units the coefficients were fitted in (K and kPa in the
// reference dataset).
type Coefficients struct {
	A float64 `json:"a" yaml:"a" mapstructure:"a"`
	B float64 `json:"b" yaml:"b" mapstructure:"b"`
	C float64 `json:"c" yaml:"c" mapstructure:"c"`
	D float64 `json:"d" yaml:"d" mapstructure:"d"`
	E float64 `json:"e" yaml:"e" mapstructure:"e"`
	F float64 `json:"f" yaml:"f" mapstructure:"f"`
}

// Values returns the coefficients in a..f order.
func (k Coefficients) Values() [6]float64 {
	return [6]float64{k.A, k.B, k.C, k.D, k.E, k.F}
}

// CoefficientsFromValues builds coefficients from a..f order.
func CoefficientsFromValues(v [6]float64) Coefficients {
	return Coefficients{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
}

// CoefficientNames lists the column names of the tabular view, in order.
var CoefficientNames = [6]string{"a", "b", "c", "d", "e", "f"}

// Component is one row of the coefficient table.
type Component struct {
	Name         string       `json:"component"`
	Coefficients Coefficients `json:"coefficients"`
}

// Table is the immutable, ordered coefficient table.
// It is safe for concurrent reads.
type Table struct {
	components []Component
	index      map[string]int
}

// NewTable builds a table, preserving input order.
// Names must be non-empty and unique.
func NewTable(components ...Component) (*Table, error) {
	t := &Table{
		components: make([]Component, len(components)),
		index:      make(map[string]int, len(components)),
	}
	for i, c := range components {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: component %d has an empty name", ErrInvalidParams, i)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate component %q", ErrInvalidParams, c.Name)
		}
		t.components[i] = c
		t.index[c.Name] = i
	}
	return t, nil
}

// Len returns the number of components.
func (t *Table) Len() int { return len(t.components) }

// Components returns a copy of the rows in table order.
func (t *Table) Components() []Component {
	out := make([]Component, len(t.components))
	copy(out, t.components)
	return out
}

// Names returns the component names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.components))
	for i, c := range t.components {
		names[i] = c.Name
	}
	return names
}

// Has reports whether name is present.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Lookup returns the component with the given name or a *LookupError.
func (t *Table) Lookup(name string) (Component, error) {
	i, ok := t.index[name]
	if !ok {
		return Component{}, &LookupError{Name: name}
	}
	return t.components[i], nil
}

// Select returns the components whose names are in names, in table order.
// Unknown names fail with a *LookupError. A nil selection means every component.
func (t *Table) Select(names []string) ([]Component, error) {
	if names == nil {
		return t.Components(), nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, &LookupError{Name: n}
		}
		wanted[n] = true
	}
	out := make([]Component, 0, len(wanted))
	for _, c := range t.components {
		if wanted[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Pairs enumerates every unordered pair (i < j) in table order.
func (t *Table) Pairs() []Pair {
	n := len(t.components)
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{First: t.components[i].Name, Second: t.components[j].Name})
		}
	}
	return pairs
}

// DefaultPair returns the pair of the first two components.
func (t *Table) DefaultPair() (Pair, bool) {
	if len(t.components) < 2 {
		return Pair{}, false
	}
	return Pair{First: t.components[0].Name, Second: t.components[1].Name}, true
}

// Fingerprint identifies the table contents; equal tables share a fingerprint.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	for _, c := range t.components {
		h.Write([]byte(c.Name))
		h.Write([]byte{0})
		for _, v := range c.Coefficients.Values() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
