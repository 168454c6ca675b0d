package thermo

import (
	"fmt"

	"github.com/aretw0/antoine/pkg/domain"
)

// Grid is an evenly spaced, ordered sampling of [Min, Max] with Size points.
type Grid struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Size int     `json:"size" yaml:"size"`
}

// DefaultGrid is the temperature grid of the boiling point search (K).
var DefaultGrid = Grid{Min: 200, Max: 700, Size: 1000}

// IsZero reports whether the grid is unset.
func (g Grid) IsZero() bool { return g == Grid{} }

// Validate checks that the grid can be sampled.
func (g Grid) Validate() error {
	if !IsFinite(g.Min) || !IsFinite(g.Max) {
		return fmt.Errorf("%w: grid bounds must be finite, got [%v, %v]", domain.ErrInvalidParams, g.Min, g.Max)
	}
	if g.Min > g.Max {
		return fmt.Errorf("%w: grid min (%g) exceeds max (%g)", domain.ErrInvalidParams, g.Min, g.Max)
	}
	if g.Size < 1 {
		return fmt.Errorf("%w: grid size must be at least 1, got %d", domain.ErrInvalidParams, g.Size)
	}
	return nil
}

// Step is the spacing between neighbours, the resolution of the search.
func (g Grid) Step() float64 {
	if g.Size < 2 {
		return 0
	}
	return (g.Max - g.Min) / float64(g.Size-1)
}

// Points samples the grid.
func (g Grid) Points() []float64 {
	return Linspace(g.Min, g.Max, g.Size)
}

// Linspace returns n evenly spaced values over [start, stop].
// The last value is exactly stop; n == 1 yields [start].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float64(i)*step + start
	}
	out[n-1] = stop
	return out
}
