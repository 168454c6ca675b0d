package thermo

import (
	"math"

	"github.com/aretw0/antoine/pkg/domain"
)

// LnVaporPressure evaluates ln(P) = A + B/(T+C) + D*ln(T) + E*T^F.
func LnVaporPressure(t float64, k domain.Coefficients) float64 {
	return k.A + k.B/(t+k.C) + k.D*math.Log(t) + k.E*math.Pow(t, k.F)
}

// VaporPressure returns exp(LnVaporPressure(t, k)).
func VaporPressure(t float64, k domain.Coefficients) float64 {
	return math.Exp(LnVaporPressure(t, k))
}

// VaporPressures evaluates the model at every temperature of ts.
// The result has the same length as ts.
func VaporPressures(ts []float64, k domain.Coefficients) []float64 {
	ps := make([]float64, len(ts))
	for i, t := range ts {
		ps[i] = VaporPressure(t, k)
	}
	return ps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// CountNonFinite returns how many values of xs are NaN or infinite.
func CountNonFinite(xs []float64) int {
	n := 0
	for _, x := range xs {
		if !IsFinite(x) {
			n++
		}
	}
	return n
}
