package antoine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/antoine"
	"github.com/aretw0/antoine/internal/testutils"
	"github.com/aretw0/antoine/pkg/adapters/catalog"
	"github.com/aretw0/antoine/pkg/adapters/memory"
	"github.com/aretw0/antoine/pkg/adapters/tsv"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/thermo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_ShippedTable(t *testing.T) {
	eng, err := antoine.New(filepath.Join("data", "parametros_antoine.txt"))
	require.NoError(t, err)

	assert.Equal(t, "parametros_antoine.txt", eng.Name)
	assert.IsType(t, &tsv.Loader{}, eng.Loader())
	assert.Equal(t, []string{"Water", "Ethanol", "Benzene", "Toluene"}, eng.Table().Names())

	ctx := context.Background()
	bp, err := eng.BoilingTemperature(ctx, "Water", domain.DefaultPtarget)
	require.NoError(t, err)
	assert.InDelta(t, 373.15, bp.Temperature, thermo.DefaultGrid.Step())

	d, err := eng.Compute(ctx, domain.DefaultParams())
	require.NoError(t, err)
	assert.Len(t, d.Curves, 4)
	assert.Empty(t, d.Skipped)
}

func TestLoaderFor(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"table.txt":        testutils.WaterTSV,
		"catalog.yaml":     "components: []",
		"catalog.json":     "{}",
		"no-extension-tsv": testutils.WaterTSV,
	})

	l, err := antoine.LoaderFor(filepath.Join(dir, "table.txt"))
	require.NoError(t, err)
	assert.IsType(t, &tsv.Loader{}, l)

	l, err = antoine.LoaderFor(filepath.Join(dir, "no-extension-tsv"))
	require.NoError(t, err)
	assert.IsType(t, &tsv.Loader{}, l)

	l, err = antoine.LoaderFor(filepath.Join(dir, "catalog.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &catalog.Loader{}, l)

	l, err = antoine.LoaderFor(filepath.Join(dir, "catalog.json"))
	require.NoError(t, err)
	assert.Equal(t, catalog.FormatJSON, l.(*catalog.Loader).Format)

	_, err = antoine.LoaderFor(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFacade_LoamDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"water.md": "---\nname: Water\ncoefficients: {a: 66.7412, b: -7258.2, c: 0, d: -7.3037, e: 4.1653E-06, f: 2}\n---",
	})

	eng, err := antoine.New(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Water"}, eng.Table().Names())

	// Directory loaders can be watched; the channel closes with the context.
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := eng.Watch(ctx)
	require.NoError(t, err)
	cancel()
	for range ch {
	}
}

func TestFacade_ParseErrorsAreFatal(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"short.txt": "Parameter\tWater\na\t1\n"})

	_, err := antoine.New(filepath.Join(dir, "short.txt"))
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = antoine.New("")
	assert.Error(t, err)
}

func TestFacade_OptionsReachTheService(t *testing.T) {
	var computed int
	cache := memory.NewCache()
	grid := thermo.Grid{Min: 300, Max: 400, Size: 101}

	eng, err := antoine.New("",
		antoine.WithLoader(memory.NewFromComponents(
			domain.Component{Name: "Water", Coefficients: domain.Coefficients{A: 66.7412, B: -7258.2, D: -7.3037, E: 4.1653e-06, F: 2}},
		)),
		antoine.WithGrid(grid),
		antoine.WithStrategy(thermo.StrategyBisect),
		antoine.WithCurvePoints(50),
		antoine.WithCache(cache),
		antoine.WithHooks(domain.Hooks{OnComputed: func(context.Context, *domain.ComputeEvent) { computed++ }}),
		antoine.WithLogger(nil),
	)
	require.NoError(t, err)

	svc := eng.Service()
	assert.Equal(t, grid, svc.Finder().Grid)
	assert.Equal(t, thermo.StrategyBisect, svc.Finder().Strategy)
	assert.Equal(t, 50, svc.CurvePoints())

	_, err = eng.Compute(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 1, computed)
	assert.Equal(t, 1, cache.Len())

	_, err = eng.Watch(context.Background())
	assert.Error(t, err, "memory loader cannot be watched")
}

func TestFacade_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	write := func(a string) {
		content := "components:\n  - {name: X, a: " + a + ", b: -1000, c: 0, d: 0, e: 0, f: 0}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("10")
	eng, err := antoine.New(path)
	require.NoError(t, err)
	before := eng.Table().Fingerprint()

	write("11")
	require.NoError(t, eng.Reload(context.Background()))
	assert.NotEqual(t, before, eng.Table().Fingerprint())

	// A broken edit keeps the last good table.
	require.NoError(t, os.WriteFile(path, []byte("components: ["), 0o644))
	assert.ErrorIs(t, eng.Reload(context.Background()), domain.ErrParse)
	assert.Equal(t, 1, eng.Table().Len())
}
