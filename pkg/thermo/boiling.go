package thermo

import (
	"fmt"
	"math"

	"github.com/aretw0/antoine/pkg/domain"
)

// Strategy selects how the boiling temperature is resolved.
type Strategy int

const (
	// StrategyGrid returns the nearest grid point (quantized result).
	StrategyGrid Strategy = iota
	// StrategyBisect refines the grid winner by bisection when a neighbour
	// interval brackets the target.
	StrategyBisect
)

func (s Strategy) String() string {
	switch s {
	case StrategyGrid:
		return "grid"
	case StrategyBisect:
		return "bisect"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "grid" (or "") and "bisect".
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "grid":
		return StrategyGrid, nil
	case "bisect":
		return StrategyBisect, nil
	default:
		return StrategyGrid, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidParams, s)
	}
}

// bisectTolerance is the interval width (K) at which refinement stops.
const bisectTolerance = 1e-9

// FindBoilingTemperature returns the grid temperature whose vapor pressure is
// closest to target. Non-finite pressures are skipped; ties go to the lowest
// temperature. It fails with a *domain.NumericDomainError when no grid point has
// a finite pressure.
func FindBoilingTemperature(target float64, k domain.Coefficients, g Grid) (float64, error) {
	return Finder{Grid: g}.Find(target, k)
}

// Finder is a configured boiling point search.
// The zero value searches DefaultGrid with StrategyGrid.
type Finder struct {
	Grid     Grid
	Strategy Strategy
}

// Find resolves the boiling temperature at target pressure.
func (f Finder) Find(target float64, k domain.Coefficients) (float64, error) {
	g := f.Grid
	if g.IsZero() {
		g = DefaultGrid
	}
	if err := g.Validate(); err != nil {
		return 0, err
	}
	if !IsFinite(target) {
		return 0, fmt.Errorf("%w: target pressure must be finite, got %v", domain.ErrInvalidParams, target)
	}

	ts := g.Points()
	ps := VaporPressures(ts, k)
	best := nearest(target, ps)
	if best < 0 {
		return 0, &domain.NumericDomainError{
			Reason: fmt.Sprintf("no finite vapor pressure on grid [%g, %g]", g.Min, g.Max),
		}
	}

	if f.Strategy == StrategyBisect {
		if t, ok := refine(target, k, ts, ps, best); ok {
			return t, nil
		}
	}
	return ts[best], nil
}

// nearest returns the index of the finite pressure closest to target, or -1.
func nearest(target float64, ps []float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range ps {
		if !IsFinite(p) {
			continue
		}
		if d := math.Abs(p - target); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// refine bisects the neighbour interval of ts[i] that brackets target.
func refine(target float64, k domain.Coefficients, ts, ps []float64, i int) (float64, bool) {
	if ps[i] == target {
		return ts[i], true
	}
	for _, j := range []int{i - 1, i} {
		if j < 0 || j+1 >= len(ts) {
			continue
		}
		lo, hi := ts[j], ts[j+1]
		flo, fhi := ps[j]-target, ps[j+1]-target
		if !IsFinite(flo) || !IsFinite(fhi) || flo*fhi > 0 {
			continue
		}
		for hi-lo > bisectTolerance {
			mid := lo + (hi-lo)/2
			fmid := VaporPressure(mid, k) - target
			if !IsFinite(fmid) {
				return 0, false
			}
			if fmid == 0 {
				return mid, true
			}
			if flo*fmid < 0 {
				hi = mid
			} else {
				lo, flo = mid, fmid
			}
		}
		return lo + (hi-lo)/2, true
	}
	return 0, false
}
