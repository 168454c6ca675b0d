package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/aretw0/antoine/pkg/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Captions and notices.
const (
	PressureTitle = "Vapor pressure vs temperature"
	noComponents  = "No components to display"
	noPair        = "Select a pair of components"
)

// BoilingTitle captions the boiling bar chart.
func BoilingTitle(pressure float64) string {
	return fmt.Sprintf("Boiling temperature at %.2f kPa", pressure)
}

// SeparationTitle captions the pair difference chart.
func SeparationTitle(pressure float64) string {
	return fmt.Sprintf("Boiling temperature difference at %.1f kPa", pressure)
}

// SweepTitle captions the difference-vs-pressure chart.
func SweepTitle(pair domain.Pair) string {
	return fmt.Sprintf("Boiling difference between %s and %s vs pressure", pair.First, pair.Second)
}

// Pressure draws one line per curve, T (K) against P (kPa).
func Pressure(w io.Writer, curves []domain.Curve, opts ...Option) error {
	o := resolve(opts)
	if len(curves) == 0 {
		return placeholder(w, o, PressureTitle, noComponents)
	}

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	series := make([]gochart.Series, 0, len(curves))
	for i, c := range curves {
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for j, p := range c.Points {
			xs[j], ys[j] = p.X, p.Y
			xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
			ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    c.Component,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: gochart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if math.IsInf(xmin, 1) {
		return placeholder(w, o, PressureTitle, noComponents)
	}

	ch := gochart.Chart{
		Title:      PressureTitle,
		Width:      o.Width,
		Height:     o.Height,
		Background: background(),
		XAxis: gochart.XAxis{
			Name:           "T (K)",
			Range:          span(xmin, xmax),
			ValueFormatter: formatValue,
		},
		YAxis: gochart.YAxis{
			Name:           "P (kPa)",
			Range:          span(ymin, ymax),
			ValueFormatter: formatValue,
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.SVG, w)
}

// Boiling draws one bar per component, Teb (K) at pressure.
func Boiling(w io.Writer, pressure float64, points []domain.BoilingPoint, opts ...Option) error {
	o := resolve(opts)
	title := BoilingTitle(pressure)
	if len(points) == 0 {
		return placeholder(w, o, title, noComponents)
	}

	bars := make([]gochart.Value, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		bars[i] = gochart.Value{
			Label: p.Component,
			Value: p.Temperature,
			Style: gochart.Style{FillColor: gochart.GetDefaultColor(i), StrokeColor: gochart.GetDefaultColor(i)},
		}
		values[i] = p.Temperature
	}
	return bar(w, o, title, "Teb (K)", bars, values)
}

// Separation draws the single |T2 - T1| bar of the selected pair.
func Separation(w io.Writer, pressure float64, sep *domain.Separation, opts ...Option) error {
	o := resolve(opts)
	title := SeparationTitle(pressure)
	if sep == nil {
		return placeholder(w, o, title, noPair)
	}
	bars := []gochart.Value{{
		Label: sep.Label,
		Value: sep.Difference,
		Style: gochart.Style{FillColor: gochart.GetDefaultColor(0), StrokeColor: gochart.GetDefaultColor(0)},
	}}
	return bar(w, o, title, "ΔT (K)", bars, []float64{sep.Difference})
}

func bar(w io.Writer, o Options, title, yName string, bars []gochart.Value, values []float64) error {
	width := o.Width / (2 * len(bars))
	if width > 80 {
		width = 80
	}
	bc := gochart.BarChart{
		Title:      title,
		Width:      o.Width,
		Height:     o.Height,
		BarWidth:   width,
		Background: background(),
		YAxis: gochart.YAxis{
			Name:           yName,
			Range:          barRange(values),
			ValueFormatter: formatValue,
		},
		Bars: bars,
	}
	return bc.Render(gochart.SVG, w)
}

// Sweep draws the pair difference (K) against pressure (kPa).
func Sweep(w io.Writer, pair domain.Pair, pts []domain.Point, opts ...Option) error {
	o := resolve(opts)
	if pair.IsZero() || len(pts) < 2 {
		return placeholder(w, o, "Boiling difference vs pressure", noPair)
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
	}

	ch := gochart.Chart{
		Title:      SweepTitle(pair),
		Width:      o.Width,
		Height:     o.Height,
		Background: background(),
		XAxis: gochart.XAxis{
			Name:           "Pressure (kPa)",
			Range:          span(xs[0], xs[len(xs)-1]),
			ValueFormatter: formatValue,
		},
		YAxis: gochart.YAxis{
			Name:           "ΔT (K)",
			Range:          span(ymin, ymax),
			ValueFormatter: formatValue,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    pair.Label(),
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: gochart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
			},
		},
	}
	return ch.Render(gochart.SVG, w)
}
