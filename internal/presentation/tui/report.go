package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/antoine/pkg/domain"
)

// ComponentsReport lists the table in its tabular view.
func ComponentsReport(table *domain.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Components (%d)\n\n", table.Len())
	b.WriteString("| Component |")
	for _, n := range domain.CoefficientNames {
		fmt.Fprintf(&b, " %s |", n)
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(domain.CoefficientNames)))
	b.WriteString("\n")
	for _, c := range table.Components() {
		fmt.Fprintf(&b, "| %s |", c.Name)
		for _, v := range c.Coefficients.Values() {
			fmt.Fprintf(&b, " %g |", v)
		}
		b.WriteString("\n")
	}

	if pairs := table.Pairs(); len(pairs) > 0 {
		fmt.Fprintf(&b, "\n%d pairs available, default `%s`.\n", len(pairs), pairs[0].Key())
	}
	return b.String()
}

// CurveReport tabulates a vapor pressure curve, keeping every stride-th point
// and always the last one.
func CurveReport(c domain.Curve, stride int) string {
	if stride < 1 {
		stride = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Vapor pressure of %s\n\n", c.Component)
	b.WriteString("| T (K) | P (kPa) |\n|---:|---:|\n")
	for i, p := range c.Points {
		if i%stride != 0 && i != len(c.Points)-1 {
			continue
		}
		fmt.Fprintf(&b, "| %.2f | %.6g |\n", p.X, p.Y)
	}
	return b.String()
}

// BoilingReport tabulates boiling temperatures.
func BoilingReport(pressure float64, points []domain.BoilingPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Boiling temperature at %g kPa\n\n", pressure)
	if len(points) == 0 {
		b.WriteString("_No components to display._\n")
		return b.String()
	}
	b.WriteString("| Component | Teb (K) | Teb (°C) |\n|---|---:|---:|\n")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %.3f | %.3f |\n", p.Component, p.Temperature, p.Temperature-273.15)
	}
	return b.String()
}

// SeparationReport summarizes a pair and, when given, its sweep extremes.
func SeparationReport(sep domain.Separation, sweep []domain.Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sep.Label)
	fmt.Fprintf(&b, "At **%g kPa**: %s boils at %.3f K, %s at %.3f K.\n\n",
		sep.Pressure, sep.Pair.First, sep.First, sep.Pair.Second, sep.Second)
	fmt.Fprintf(&b, "ΔT = **%.3f K**\n", sep.Difference)

	if len(sweep) > 0 {
		lo, hi := sweep[0], sweep[0]
		for _, p := range sweep[1:] {
			if p.Y < lo.Y {
				lo = p
			}
			if p.Y > hi.Y {
				hi = p
			}
		}
		b.WriteString("\n## Over pressure\n\n")
		b.WriteString("| | Pressure (kPa) | ΔT (K) |\n|---|---:|---:|\n")
		fmt.Fprintf(&b, "| min | %.1f | %.3f |\n", lo.X, lo.Y)
		fmt.Fprintf(&b, "| max | %.1f | %.3f |\n", hi.X, hi.Y)
	}
	return b.String()
}

// SkipsReport lists skipped components, or nothing when there are none.
func SkipsReport(skips []domain.Skip) string {
	if len(skips) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n> Skipped components:\n")
	for _, s := range skips {
		fmt.Fprintf(&b, "> - **%s**: %s\n", s.Component, s.Reason)
	}
	return b.String()
}
