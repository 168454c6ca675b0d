// Package chart renders dashboard results as SVG charts.
package chart

import (
	"fmt"
	"html"
	"io"
	"math"

	"github.com/aretw0/antoine/pkg/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Kind names one of the four dashboard charts.
type Kind string

const (
	KindPressure   Kind = "pressure"
	KindBoiling    Kind = "boiling"
	KindSeparation Kind = "separation"
	KindSweep      Kind = "sweep"
)

// Kinds lists every chart in dashboard order.
var Kinds = []Kind{KindPressure, KindBoiling, KindSeparation, KindSweep}

// ParseKind validates a chart name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown chart %q", domain.ErrInvalidParams, s)
}

// ContentType is the media type written by every renderer.
const ContentType = "image/svg+xml"

// Default canvas size.
const (
	DefaultWidth  = 720
	DefaultHeight = 420
)

// Options controls the canvas.
type Options struct {
	Width  int
	Height int
}

// Option configures a render.
type Option func(*Options)

// WithSize overrides the canvas size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		if width > 0 {
			o.Width = width
		}
		if height > 0 {
			o.Height = height
		}
	}
}

func resolve(opts []Option) Options {
	o := Options{Width: DefaultWidth, Height: DefaultHeight}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Render draws the chart of kind from a computed dashboard.
func Render(w io.Writer, kind Kind, d *domain.Dashboard, opts ...Option) error {
	switch kind {
	case KindPressure:
		return Pressure(w, d.Curves, opts...)
	case KindBoiling:
		return Boiling(w, d.Params.Ptarget, d.Boiling, opts...)
	case KindSeparation:
		return Separation(w, d.Params.Ptarget, d.Separation, opts...)
	case KindSweep:
		return Sweep(w, d.Params.Pair, d.Sweep, opts...)
	default:
		return fmt.Errorf("%w: unknown chart %q", domain.ErrInvalidParams, kind)
	}
}

func background() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.4g", f)
	}
	return fmt.Sprint(v)
}

// span returns a non-degenerate range covering min and max with a small margin.
func span(min, max float64) *gochart.ContinuousRange {
	if min == max {
		pad := math.Max(math.Abs(min)*0.05, 1)
		return &gochart.ContinuousRange{Min: min - pad, Max: max + pad}
	}
	margin := (max - min) * 0.05
	return &gochart.ContinuousRange{Min: min - margin, Max: max + margin}
}

// barRange starts at zero and leaves headroom above the tallest bar.
func barRange(values []float64) *gochart.ContinuousRange {
	max := 0.0
	for _, v := range values {
		max = math.Max(max, v)
	}
	if max == 0 {
		max = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: max * 1.1}
}

// placeholder writes an empty SVG canvas carrying the title and a notice.
func placeholder(w io.Writer, o Options, title, notice string) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
			`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
			`<text x="%d" y="28" text-anchor="middle" font-family="sans-serif" font-size="15">%s</text>`+
			`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="13" fill="#888888">%s</text>`+
			`</svg>`,
		o.Width, o.Height,
		o.Width/2, html.EscapeString(title),
		o.Width/2, o.Height/2, html.EscapeString(notice),
	)
	return err
}
