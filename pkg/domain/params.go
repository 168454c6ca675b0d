package domain

import (
	"fmt"
	"math"
)

// Params are the interactive inputs of one dashboard recomputation.
type Params struct {
	Tmin       float64  `json:"tmin"`
	Tmax       float64  `json:"tmax"`
	Ptarget    float64  `json:"ptarget"`
	Components []string `json:"components"` // nil selects every component
	Pair       Pair     `json:"pair"`       // zero selects the first two components
}

// DefaultParams returns the initial dashboard state.
func DefaultParams() Params {
	return Params{
		Tmin:    DefaultTmin,
		Tmax:    DefaultTmax,
		Ptarget: DefaultPtarget,
	}
}

// Validate checks the numeric inputs.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"tmin", p.Tmin}, {"tmax", p.Tmax}, {"ptarget", p.Ptarget}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParams, f.name, f.v)
		}
	}
	if p.Tmin > p.Tmax {
		return fmt.Errorf("%w: tmin (%g) must not exceed tmax (%g)", ErrInvalidParams, p.Tmin, p.Tmax)
	}
	if p.Ptarget <= 0 {
		return fmt.Errorf("%w: ptarget must be positive, got %g", ErrInvalidParams, p.Ptarget)
	}
	if !p.Pair.IsZero() {
		if p.Pair.First == "" || p.Pair.Second == "" {
			return fmt.Errorf("%w: pair %q is incomplete", ErrInvalidParams, p.Pair.Key())
		}
		if p.Pair.First == p.Pair.Second {
			return fmt.Errorf("%w: pair members must differ, got %q twice", ErrInvalidParams, p.Pair.First)
		}
	}
	return nil
}
