package antoine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/aretw0/antoine/pkg/adapters/catalog"
	loamAdapter "github.com/aretw0/antoine/pkg/adapters/loam"
	"github.com/aretw0/antoine/pkg/adapters/tsv"
	"github.com/aretw0/antoine/pkg/dashboard"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports"
	"github.com/aretw0/antoine/pkg/thermo"
)

// Engine is the high-level entry point for the Antoine library.
// It owns the loaded coefficient table and the dashboard service built on it.
type Engine struct {
	service     atomic.Pointer[dashboard.Service]
	loader      ports.TableLoader
	cache       ports.ResultCache
	hooks       domain.Hooks
	logger      *slog.Logger
	grid        thermo.Grid
	strategy    thermo.Strategy
	curvePoints int
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom TableLoader, bypassing path-based detection.
func WithLoader(l ports.TableLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. Repeated calls are merged.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithCache stores dashboard results in cache.
func WithCache(cache ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithGrid sets the temperature grid of the boiling search.
func WithGrid(g thermo.Grid) Option {
	return func(e *Engine) {
		e.grid = g
	}
}

// WithStrategy selects grid-only or bisection-refined boiling temperatures.
func WithStrategy(s thermo.Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithCurvePoints sets the sampling of dashboard curves.
func WithCurvePoints(n int) Option {
	return func(e *Engine) {
		e.curvePoints = n
	}
}

// LoaderFor picks a loader from the shape of path: a directory is a Loam
// repository, .yaml/.yml/.json is a catalog, anything else a TSV table.
func LoaderFor(path string) (ports.TableLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &domain.ParseError{Source: path, Row: -1, Column: -1, Msg: "cannot open table", Err: err}
	}
	if info.IsDir() {
		return loamAdapter.Open(path)
	}
	if _, ok := catalog.FormatFromPath(path); ok {
		return catalog.NewLoader(path), nil
	}
	return tsv.NewLoader(path), nil
}

// New initializes a new Engine and loads the table at path.
// If WithLoader is provided, path is only used as a descriptive name.
func New(path string, opts ...Option) (*Engine, error) {
	return Load(context.Background(), path, opts...)
}

// Load is New with a caller-provided context for the initial load.
func Load(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("table path is required when no custom loader is provided")
		}
		l, err := LoaderFor(path)
		if err != nil {
			return nil, err
		}
		eng.loader = l
	}
	if path != "" {
		eng.Name = filepath.Base(path)
	}

	// Ensure logger is initialized (so we don't pass nil to the service)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("table", eng.Name)
	}

	if err := eng.Reload(ctx); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload reads the table again and swaps the service atomically.
// On failure the previous table stays active.
func (e *Engine) Reload(ctx context.Context) error {
	table, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	svc := dashboard.New(table,
		dashboard.WithGrid(e.grid),
		dashboard.WithStrategy(e.strategy),
		dashboard.WithCurvePoints(e.curvePoints),
		dashboard.WithCache(e.cache),
		dashboard.WithHooks(e.hooks),
		dashboard.WithLogger(e.logger),
	)
	e.service.Store(svc)

	e.logger.DebugContext(ctx, "table loaded",
		"components", table.Len(),
		"fingerprint", table.Fingerprint(),
	)
	return nil
}

// Service returns the current dashboard service.
func (e *Engine) Service() *dashboard.Service {
	return e.service.Load()
}

// Table returns the current coefficient table.
func (e *Engine) Table() *domain.Table {
	return e.Service().Table()
}

// Compute runs one full dashboard recomputation.
func (e *Engine) Compute(ctx context.Context, params domain.Params) (*domain.Dashboard, error) {
	return e.Service().Compute(ctx, params)
}

// Curve samples the vapor pressure of one component.
func (e *Engine) Curve(ctx context.Context, name string, tmin, tmax float64, points int) (domain.Curve, error) {
	return e.Service().Curve(ctx, name, tmin, tmax, points)
}

// BoilingTemperature finds the boiling temperature of one component at pressure (kPa).
func (e *Engine) BoilingTemperature(ctx context.Context, name string, pressure float64) (domain.BoilingPoint, error) {
	return e.Service().BoilingTemperature(ctx, name, pressure)
}

// Separation compares the boiling temperatures of a pair at pressure (kPa).
func (e *Engine) Separation(ctx context.Context, pair domain.Pair, pressure float64) (domain.Separation, error) {
	return e.Service().Separation(ctx, pair, pressure)
}

// SeparationSweep evaluates the pair difference across the pressure sweep.
func (e *Engine) SeparationSweep(ctx context.Context, pair domain.Pair) ([]domain.Point, error) {
	return e.Service().SeparationSweep(ctx, pair)
}

// Watch returns a channel that signals when the underlying table changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying TableLoader used by the engine.
func (e *Engine) Loader() ports.TableLoader {
	return e.loader
}
