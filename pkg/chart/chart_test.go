package chart_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/antoine/pkg/chart"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDashboard() *domain.Dashboard {
	pair := domain.Pair{First: "Water", Second: "Ethanol"}
	line := func(offset float64) []domain.Point {
		pts := make([]domain.Point, 10)
		for i := range pts {
			pts[i] = domain.Point{X: 300 + float64(i)*10, Y: offset + float64(i*i)}
		}
		return pts
	}
	return &domain.Dashboard{
		Params: domain.Params{Tmin: 300, Tmax: 390, Ptarget: 101.325, Pair: pair},
		Curves: []domain.Curve{
			{Component: "Water", Points: line(1)},
			{Component: "Ethanol", Points: line(5)},
		},
		Boiling: []domain.BoilingPoint{
			{Component: "Water", Pressure: 101.325, Temperature: 373.17},
			{Component: "Ethanol", Pressure: 101.325, Temperature: 351.65},
		},
		Separation: &domain.Separation{Pair: pair, Label: pair.Label(), Pressure: 101.325, First: 373.17, Second: 351.65, Difference: 21.52},
		Sweep:      []domain.Point{{X: 10, Y: 17}, {X: 2505, Y: 30}, {X: 5000, Y: 35.5}},
	}
}

func assertSVG(t *testing.T, out string) {
	t.Helper()
	assert.True(t, strings.Contains(out, "<svg"), "output is not SVG: %.80s", out)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestRender_AllKinds(t *testing.T) {
	d := sampleDashboard()
	for _, kind := range chart.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, chart.Render(&buf, kind, d, chart.WithSize(640, 360)))
			assertSVG(t, buf.String())
		})
	}
}

func TestRender_EmptyDashboardUsesPlaceholders(t *testing.T) {
	d := &domain.Dashboard{Params: domain.DefaultParams()}
	for _, kind := range chart.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, chart.Render(&buf, kind, d))
			assertSVG(t, buf.String())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, chart.Pressure(&buf, nil))
	assert.Contains(t, buf.String(), chart.PressureTitle)
}

func TestBoiling_IdenticalBars(t *testing.T) {
	var buf bytes.Buffer
	points := []domain.BoilingPoint{
		{Component: "A", Temperature: 350},
		{Component: "B", Temperature: 350},
	}
	require.NoError(t, chart.Boiling(&buf, 100, points))
	assertSVG(t, buf.String())
}

func TestSeparation_ZeroDifference(t *testing.T) {
	var buf bytes.Buffer
	sep := &domain.Separation{Label: "B - A", Difference: 0}
	require.NoError(t, chart.Separation(&buf, 100, sep))
	assertSVG(t, buf.String())
}

func TestSweep_FlatLine(t *testing.T) {
	var buf bytes.Buffer
	pair := domain.Pair{First: "A", Second: "B"}
	pts := []domain.Point{{X: 10, Y: 3}, {X: 20, Y: 3}}
	require.NoError(t, chart.Sweep(&buf, pair, pts))
	assertSVG(t, buf.String())
}

func TestSweep_NoPairPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, chart.Sweep(&buf, domain.Pair{}, nil))
	assertSVG(t, buf.String())
	assert.Contains(t, buf.String(), "Select a pair of components")
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "Boiling temperature at 101.33 kPa", chart.BoilingTitle(101.325))
	assert.Equal(t, "Boiling temperature at 1000.00 kPa", chart.BoilingTitle(1000))
	assert.Equal(t, "Boiling temperature difference at 101.3 kPa", chart.SeparationTitle(101.325))
	assert.Equal(t, "Boiling temperature difference at 1000.0 kPa", chart.SeparationTitle(1000))
	assert.Equal(t, "Boiling difference between Water and Ethanol vs pressure",
		chart.SweepTitle(domain.Pair{First: "Water", Second: "Ethanol"}))
}

func TestParseKind(t *testing.T) {
	k, err := chart.ParseKind("sweep")
	require.NoError(t, err)
	assert.Equal(t, chart.KindSweep, k)

	_, err = chart.ParseKind("pie")
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}
