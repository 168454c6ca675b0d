package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/antoine/internal/presentation/graph"
	"github.com/aretw0/antoine/internal/presentation/tui"
	"github.com/aretw0/antoine/pkg/chart"
	"github.com/aretw0/antoine/pkg/domain"
)

type boilResult struct {
	Pressure float64               `json:"pressure"`
	Boiling  []domain.BoilingPoint `json:"boiling"`
	Skipped  []domain.Skip         `json:"skipped,omitempty"`
}

type compareResult struct {
	Separation domain.Separation `json:"separation"`
	Sweep      []domain.Point    `json:"sweep,omitempty"`
}

type validateResult struct {
	Table       string        `json:"table"`
	Components  int           `json:"components"`
	Pairs       int           `json:"pairs"`
	Fingerprint string        `json:"fingerprint"`
	Skipped     []domain.Skip `json:"skipped,omitempty"`
}

// RunComponents prints the coefficient table.
func RunComponents(rt *Runtime, out Output) error {
	t := rt.Engine.Table()
	return out.Emit(tui.ComponentsReport(t), t.Components())
}

// RunCurve prints the vapor pressure curve of one component.
func RunCurve(ctx context.Context, rt *Runtime, out Output, name string, tmin, tmax float64, points, stride int) error {
	c, err := rt.Engine.Curve(ctx, name, tmin, tmax, points)
	if err != nil {
		return err
	}
	return out.Emit(tui.CurveReport(c, stride), c)
}

// RunBoil prints boiling temperatures at pressure. No names means every
// component; components without a finite result are reported as skipped.
func RunBoil(ctx context.Context, rt *Runtime, out Output, names []string, pressure float64) error {
	components, err := rt.Engine.Table().Select(nilIfEmpty(names))
	if err != nil {
		return err
	}

	res := boilResult{Pressure: pressure, Boiling: []domain.BoilingPoint{}}
	for _, c := range components {
		bp, err := rt.Engine.BoilingTemperature(ctx, c.Name, pressure)
		if errors.Is(err, domain.ErrNumericDomain) {
			res.Skipped = append(res.Skipped, domain.Skip{Component: c.Name, Reason: err.Error()})
			continue
		}
		if err != nil {
			return err
		}
		res.Boiling = append(res.Boiling, bp)
	}
	return out.Emit(tui.BoilingReport(pressure, res.Boiling)+tui.SkipsReport(res.Skipped), res)
}

// RunCompare prints the boiling separation of a pair, the first two
// components when pair is zero.
func RunCompare(ctx context.Context, rt *Runtime, out Output, pair domain.Pair, pressure float64, sweep bool) error {
	pair, err := resolvePair(rt, pair)
	if err != nil {
		return err
	}
	res := compareResult{}
	if res.Separation, err = rt.Engine.Separation(ctx, pair, pressure); err != nil {
		return err
	}
	if sweep {
		if res.Sweep, err = rt.Engine.SeparationSweep(ctx, pair); err != nil {
			return err
		}
	}
	return out.Emit(tui.SeparationReport(res.Separation, res.Sweep), res)
}

// RunChart renders one dashboard chart as SVG.
func RunChart(ctx context.Context, rt *Runtime, w io.Writer, kind chart.Kind, params domain.Params, width, height int) error {
	d, err := rt.Engine.Compute(ctx, params)
	if err != nil {
		return err
	}
	return chart.Render(w, kind, d, chart.WithSize(width, height))
}

// RunGraph prints a Mermaid graph of every pair labelled with its boiling
// separation at pressure. Pairs that cannot be evaluated are left out and
// their failing components styled as skipped.
func RunGraph(ctx context.Context, rt *Runtime, out Output, pressure float64, selected domain.Pair) error {
	t := rt.Engine.Table()
	overlay := &graph.GraphOverlay{Selected: selected}
	if overlay.Selected.IsZero() {
		overlay.Selected, _ = t.DefaultPair()
	}

	var seps []domain.Separation
	for _, p := range t.Pairs() {
		sep, err := rt.Engine.Separation(ctx, p, pressure)
		var nde *domain.NumericDomainError
		if errors.As(err, &nde) {
			overlay.Skipped = append(overlay.Skipped, nde.Component)
			continue
		}
		if err != nil {
			return err
		}
		seps = append(seps, sep)
	}

	mermaid := graph.GenerateMermaid(t.Names(), seps, overlay)
	markdown := fmt.Sprintf("# Boiling separation at %g kPa\n\n```mermaid\n%s```\n", pressure, mermaid)
	return out.Emit(markdown, map[string]any{"pressure": pressure, "mermaid": mermaid, "separations": seps})
}

// RunValidate reports the loaded table and the components that cannot be
// evaluated with the default dashboard parameters.
func RunValidate(ctx context.Context, rt *Runtime, out Output) error {
	t := rt.Engine.Table()
	res := validateResult{
		Table:       rt.Config.Table,
		Components:  t.Len(),
		Pairs:       len(t.Pairs()),
		Fingerprint: t.Fingerprint(),
	}

	params := domain.DefaultParams()
	for _, c := range t.Components() {
		if _, err := rt.Engine.Curve(ctx, c.Name, params.Tmin, params.Tmax, 0); err != nil {
			res.Skipped = append(res.Skipped, domain.Skip{Component: c.Name, Reason: err.Error()})
			continue
		}
		if _, err := rt.Engine.BoilingTemperature(ctx, c.Name, params.Ptarget); err != nil {
			res.Skipped = append(res.Skipped, domain.Skip{Component: c.Name, Reason: err.Error()})
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", res.Table)
	fmt.Fprintf(&b, "- components: %d\n- pairs: %d\n- fingerprint: `%s`\n", res.Components, res.Pairs, res.Fingerprint)
	if len(res.Skipped) == 0 {
		b.WriteString("\nTable is valid! ✅\n")
	} else {
		b.WriteString(tui.SkipsReport(res.Skipped))
	}
	return out.Emit(b.String(), res)
}

func resolvePair(rt *Runtime, pair domain.Pair) (domain.Pair, error) {
	if !pair.IsZero() {
		return pair, nil
	}
	p, ok := rt.Engine.Table().DefaultPair()
	if !ok {
		return domain.Pair{}, fmt.Errorf("%w: a pair needs at least two components", domain.ErrInvalidParams)
	}
	return p, nil
}

func nilIfEmpty(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return names
}
