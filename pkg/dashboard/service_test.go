package dashboard_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/antoine/pkg/adapters/memory"
	"github.com/aretw0/antoine/pkg/dashboard"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/thermo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	water   = domain.Component{Name: "Water", Coefficients: domain.Coefficients{A: 66.7412, B: -7258.2, D: -7.3037, E: 4.1653e-06, F: 2}}
	ethanol = domain.Component{Name: "Ethanol", Coefficients: domain.Coefficients{A: 67.5672, B: -7164.3, D: -7.327, E: 3.134e-06, F: 2}}
	benzene = domain.Component{Name: "Benzene", Coefficients: domain.Coefficients{A: 76.1992, B: -6486.2, D: -9.2194, E: 6.9844e-06, F: 2}}
	toluene = domain.Component{Name: "Toluene", Coefficients: domain.Coefficients{A: 70.0372, B: -6729.8, D: -8.179, E: 5.3017e-06, F: 2}}
	// broken overflows everywhere: exp(1000) is +Inf.
	broken = domain.Component{Name: "Broken", Coefficients: domain.Coefficients{A: 1000}}
)

// step is the resolution of the default boiling grid.
var step = thermo.DefaultGrid.Step()

func newTable(t *testing.T, components ...domain.Component) *domain.Table {
	t.Helper()
	table, err := domain.NewTable(components...)
	require.NoError(t, err)
	return table
}

func TestCompute_Defaults(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol, benzene, toluene))

	d, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)

	assert.Empty(t, d.Skipped)
	require.Len(t, d.Curves, 4)
	require.Len(t, d.Boiling, 4)
	assert.Equal(t, []string{"Water", "Ethanol", "Benzene", "Toluene"}, d.Params.Components)

	for _, c := range d.Curves {
		require.Len(t, c.Points, domain.DefaultCurvePts)
		assert.Equal(t, domain.DefaultTmin, c.Points[0].X)
		assert.Equal(t, domain.DefaultTmax, c.Points[len(c.Points)-1].X)
	}

	want := map[string]float64{"Water": 373.173, "Ethanol": 351.652, "Benzene": 353.153, "Toluene": 383.684}
	for _, bp := range d.Boiling {
		assert.InDelta(t, want[bp.Component], bp.Temperature, 0.001, bp.Component)
		assert.Equal(t, domain.DefaultPtarget, bp.Pressure)
	}

	require.NotNil(t, d.Separation)
	assert.Equal(t, domain.Pair{First: "Water", Second: "Ethanol"}, d.Separation.Pair)
	assert.Equal(t, "Ethanol - Water", d.Separation.Label)
	assert.InDelta(t, 21.521, d.Separation.Difference, 0.002)

	require.Len(t, d.Sweep, domain.SweepPoints)
	assert.Equal(t, domain.SweepPmin, d.Sweep[0].X)
	assert.Equal(t, domain.SweepPmax, d.Sweep[len(d.Sweep)-1].X)
	assert.InDelta(t, 17.017, d.Sweep[0].Y, 0.002)
	assert.InDelta(t, 35.535, d.Sweep[len(d.Sweep)-1].Y, 0.002)
}

func TestCompute_WaterBoilsNear373K(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol))

	d, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.InDelta(t, 373.15, d.Boiling[0].Temperature, step)
}

func TestCompute_SelectionAndExplicitPair(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol, benzene, toluene))

	p := domain.DefaultParams()
	p.Components = []string{"Toluene", "Water"}
	p.Pair = domain.Pair{First: "Benzene", Second: "Toluene"}

	d, err := svc.Compute(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, d.Curves, 2)
	assert.Equal(t, "Water", d.Curves[0].Component)
	assert.Equal(t, "Toluene", d.Curves[1].Component)

	// Pair members come from the full table, not the selection.
	require.NotNil(t, d.Separation)
	assert.InDelta(t, 383.684-353.153, d.Separation.Difference, 0.002)
}

func TestCompute_SkipsNonFiniteComponents(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var skipped []string
	hooks := domain.Hooks{
		OnComponentSkipped: func(_ context.Context, e *domain.SkipEvent) {
			skipped = append(skipped, e.Component)
			assert.Equal(t, domain.EventComponentSkipped, e.Type)
		},
	}

	svc := dashboard.New(newTable(t, water, ethanol, broken),
		dashboard.WithLogger(logger),
		dashboard.WithHooks(hooks),
	)

	d, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)

	require.Len(t, d.Curves, 2)
	require.Len(t, d.Boiling, 2)
	require.Len(t, d.Skipped, 1)
	assert.Equal(t, "Broken", d.Skipped[0].Component)
	assert.Contains(t, d.Skipped[0].Reason, "not finite")

	assert.Equal(t, []string{"Broken"}, skipped)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "component skipped")
	assert.Contains(t, logs.String(), "component=Broken")
}

func TestCompute_PairFailureAborts(t *testing.T) {
	svc := dashboard.New(newTable(t, water, broken))

	// Default pair is Water|Broken.
	_, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNumericDomain)

	var nde *domain.NumericDomainError
	require.True(t, errors.As(err, &nde))
	assert.Equal(t, "Broken", nde.Component)
}

func TestCompute_CollapsedTemperatureRange(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol))
	p := domain.DefaultParams()
	p.Tmin, p.Tmax = 400, 400

	d, err := svc.Compute(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, d.Curves, 2)
	assert.Len(t, d.Curves[0].Points, svc.CurvePoints())
	assert.Equal(t, 400.0, d.Curves[0].Points[0].X)
	assert.Equal(t, 400.0, d.Curves[0].Points[len(d.Curves[0].Points)-1].X)
	assert.Empty(t, d.Skipped)
}

func TestCompute_Errors(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol))
	ctx := context.Background()

	p := domain.DefaultParams()
	p.Components = []string{"Mercury"}
	_, err := svc.Compute(ctx, p)
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)

	p = domain.DefaultParams()
	p.Pair = domain.Pair{First: "Water", Second: "Mercury"}
	_, err = svc.Compute(ctx, p)
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)

	p = domain.DefaultParams()
	p.Tmin, p.Tmax = 500, 400
	_, err = svc.Compute(ctx, p)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.Compute(canceled, domain.DefaultParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompute_SingleComponentHasNoPair(t *testing.T) {
	svc := dashboard.New(newTable(t, water))

	d, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.Len(t, d.Curves, 1)
	assert.Nil(t, d.Separation)
	assert.Nil(t, d.Sweep)
}

func TestCompute_EmptySelection(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol))

	p := domain.DefaultParams()
	p.Components = []string{}
	d, err := svc.Compute(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, d.Curves)
	assert.Empty(t, d.Boiling)
	assert.NotNil(t, d.Separation)
}

func TestCompute_Deterministic(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol, benzene))

	a, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	b, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_CachedEqualsUncached(t *testing.T) {
	table := newTable(t, water, ethanol, broken)

	var lookups []bool
	var computed []domain.ComputeEvent
	hooks := domain.Hooks{
		OnCacheLookup: func(_ context.Context, e *domain.CacheEvent) { lookups = append(lookups, e.Hit) },
		OnComputed:    func(_ context.Context, e *domain.ComputeEvent) { computed = append(computed, *e) },
	}

	cache := memory.NewCache()
	cached := dashboard.New(table, dashboard.WithCache(cache), dashboard.WithHooks(hooks))
	plain := dashboard.New(table)

	p := domain.DefaultParams()
	p.Components = []string{"Water", "Broken"}

	want, err := plain.Compute(context.Background(), p)
	require.NoError(t, err)

	first, err := cached.Compute(context.Background(), p)
	require.NoError(t, err)
	second, err := cached.Compute(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	assert.Equal(t, []bool{false, true}, lookups)
	assert.Equal(t, 1, cache.Len())

	require.Len(t, computed, 2)
	assert.False(t, computed[0].Cached)
	assert.True(t, computed[1].Cached)
	assert.Equal(t, dashboard.OpDashboard, computed[1].Operation)
	assert.Equal(t, 1, computed[1].Skipped)
}

func TestCompute_CacheKeyDependsOnConfiguration(t *testing.T) {
	table := newTable(t, water, ethanol)
	cache := memory.NewCache()

	grid := dashboard.New(table, dashboard.WithCache(cache))
	bisect := dashboard.New(table, dashboard.WithCache(cache), dashboard.WithStrategy(thermo.StrategyBisect))

	_, err := grid.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	_, err = bisect.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (failingCache) Set(context.Context, string, []byte) error   { return errors.New("down") }
func (failingCache) Delete(context.Context, string) error        { return errors.New("down") }

func TestCompute_CacheFailuresAreNotFatal(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	svc := dashboard.New(newTable(t, water, ethanol), dashboard.WithCache(failingCache{}), dashboard.WithLogger(logger))

	d, err := svc.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.Len(t, d.Curves, 2)
	assert.Contains(t, logs.String(), "result cache read failed")
	assert.Contains(t, logs.String(), "result cache write failed")
}

func TestCurve(t *testing.T) {
	svc := dashboard.New(newTable(t, water, broken))
	ctx := context.Background()

	c, err := svc.Curve(ctx, "Water", 300, 400, 11)
	require.NoError(t, err)
	require.Len(t, c.Points, 11)
	assert.Equal(t, 300.0, c.Points[0].X)
	assert.Equal(t, 400.0, c.Points[10].X)
	for i := 1; i < len(c.Points); i++ {
		assert.Greater(t, c.Points[i].Y, c.Points[i-1].Y)
	}

	c, err = svc.Curve(ctx, "Water", 300, 400, 0)
	require.NoError(t, err)
	assert.Len(t, c.Points, svc.CurvePoints())

	c, err = svc.Curve(ctx, "Water", 400, 400, 5)
	require.NoError(t, err)
	require.Len(t, c.Points, 5)
	for _, p := range c.Points {
		assert.Equal(t, 400.0, p.X)
		assert.Equal(t, c.Points[0].Y, p.Y)
	}

	_, err = svc.Curve(ctx, "Water", 300, 400, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
	_, err = svc.Curve(ctx, "Water", 400, 300, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
	_, err = svc.Curve(ctx, "Mercury", 300, 400, 10)
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
	_, err = svc.Curve(ctx, "Broken", 300, 400, 10)
	assert.ErrorIs(t, err, domain.ErrNumericDomain)
}

func TestBoilingTemperature(t *testing.T) {
	svc := dashboard.New(newTable(t, water, broken))
	ctx := context.Background()

	bp, err := svc.BoilingTemperature(ctx, "Water", 101.325)
	require.NoError(t, err)
	assert.InDelta(t, 373.15, bp.Temperature, step)
	assert.Equal(t, "Water", bp.Component)

	_, err = svc.BoilingTemperature(ctx, "Water", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
	_, err = svc.BoilingTemperature(ctx, "Mercury", 100)
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)

	_, err = svc.BoilingTemperature(ctx, "Broken", 100)
	var nde *domain.NumericDomainError
	require.True(t, errors.As(err, &nde))
	assert.Equal(t, "Broken", nde.Component)
}

func TestBoilingTemperature_Bisect(t *testing.T) {
	svc := dashboard.New(newTable(t, water), dashboard.WithStrategy(thermo.StrategyBisect))

	bp, err := svc.BoilingTemperature(context.Background(), "Water", 101.325)
	require.NoError(t, err)
	assert.InDelta(t, 101.325, thermo.VaporPressure(bp.Temperature, water.Coefficients), 1e-6)
	assert.Equal(t, thermo.StrategyBisect, svc.Finder().Strategy)
}

func TestBoilingTemperature_CustomGrid(t *testing.T) {
	g := thermo.Grid{Min: 300, Max: 400, Size: 101}
	svc := dashboard.New(newTable(t, water), dashboard.WithGrid(g))

	bp, err := svc.BoilingTemperature(context.Background(), "Water", 101.325)
	require.NoError(t, err)
	assert.Equal(t, 373.0, bp.Temperature)
}

func TestSeparationAndSweep(t *testing.T) {
	svc := dashboard.New(newTable(t, water, ethanol))
	ctx := context.Background()
	pair := domain.Pair{First: "Water", Second: "Ethanol"}

	sep, err := svc.Separation(ctx, pair, 10)
	require.NoError(t, err)
	assert.InDelta(t, 17.017, sep.Difference, 0.002)
	assert.Equal(t, sep.First-sep.Second, sep.Difference)

	pts, err := svc.SeparationSweep(ctx, pair)
	require.NoError(t, err)
	require.Len(t, pts, domain.SweepPoints)
	assert.Equal(t, sep.Difference, pts[0].Y)

	_, err = svc.Separation(ctx, domain.Pair{First: "Water", Second: "Water"}, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
	_, err = svc.Separation(ctx, domain.Pair{First: "Water", Second: "Mercury"}, 10)
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
	_, err = svc.SeparationSweep(ctx, domain.Pair{First: "Water"})
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}
