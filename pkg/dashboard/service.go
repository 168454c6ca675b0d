package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports"
	"github.com/aretw0/antoine/pkg/thermo"
)

// MaxCurvePoints bounds the sampling of a single curve request.
const MaxCurvePoints = 10000

// Operation names reported in ComputeEvent.
const (
	OpDashboard  = "dashboard"
	OpCurve      = "curve"
	OpBoiling    = "boiling"
	OpSeparation = "separation"
	OpSweep      = "sweep"
)

// Service recomputes dashboard views over an immutable coefficient table.
type Service struct {
	table       *domain.Table
	finder      thermo.Finder
	curvePoints int
	cache       ports.ResultCache
	hooks       domain.Hooks
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a service over table.
func New(table *domain.Table, opts ...Option) *Service {
	s := &Service{
		table:       table,
		finder:      thermo.Finder{Grid: thermo.DefaultGrid},
		curvePoints: domain.DefaultCurvePts,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.finder.Grid.IsZero() {
		s.finder.Grid = thermo.DefaultGrid
	}
	return s
}

// Table returns the coefficient table.
func (s *Service) Table() *domain.Table { return s.table }

// Finder returns the configured boiling search.
func (s *Service) Finder() thermo.Finder { return s.finder }

// CurvePoints returns the curve sampling used by Compute.
func (s *Service) CurvePoints() int { return s.curvePoints }

// Compute runs one full recomputation.
//
// Selected components whose curve contains a non-finite pressure, or whose
// boiling search finds no finite point, are skipped and reported in
// Dashboard.Skipped. The pair is resolved against the full table and any
// failure there fails the whole call.
func (s *Service) Compute(ctx context.Context, params domain.Params) (*domain.Dashboard, error) {
	start := s.now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	selected, err := s.table.Select(params.Components)
	if err != nil {
		return nil, err
	}

	resolved := params
	resolved.Components = make([]string, len(selected))
	for i, c := range selected {
		resolved.Components[i] = c.Name
	}
	if resolved.Pair.IsZero() {
		if pair, ok := s.table.DefaultPair(); ok {
			resolved.Pair = pair
		}
	}

	key := s.cacheKey(resolved)
	if d, ok := s.lookup(ctx, key); ok {
		s.emitComputed(ctx, OpDashboard, len(d.Curves), len(d.Skipped), start, true)
		return d, nil
	}

	d, err := s.compute(ctx, resolved, selected)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, d)
	s.logger.DebugContext(ctx, "dashboard computed",
		"components", len(d.Curves),
		"skipped", len(d.Skipped),
		"pair", resolved.Pair.Key(),
	)
	s.emitComputed(ctx, OpDashboard, len(d.Curves), len(d.Skipped), start, false)
	return d, nil
}

func (s *Service) compute(ctx context.Context, p domain.Params, selected []domain.Component) (*domain.Dashboard, error) {
	d := &domain.Dashboard{
		Params:  p,
		Curves:  make([]domain.Curve, 0, len(selected)),
		Boiling: make([]domain.BoilingPoint, 0, len(selected)),
	}

	ts := thermo.Linspace(p.Tmin, p.Tmax, s.curvePoints)
	for _, c := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		curve, err := curveAt(c, ts)
		var bp domain.BoilingPoint
		if err == nil {
			bp, err = s.boil(c, p.Ptarget)
		}
		if err != nil {
			if !errors.Is(err, domain.ErrNumericDomain) {
				return nil, err
			}
			s.skip(ctx, d, c.Name, err)
			continue
		}
		d.Curves = append(d.Curves, curve)
		d.Boiling = append(d.Boiling, bp)
	}

	if p.Pair.IsZero() {
		return d, nil
	}

	sep, err := s.separation(p.Pair, p.Ptarget)
	if err != nil {
		return nil, err
	}
	d.Separation = &sep

	d.Sweep, err = s.sweep(ctx, p.Pair)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) skip(ctx context.Context, d *domain.Dashboard, name string, err error) {
	reason := err.Error()
	var nde *domain.NumericDomainError
	if errors.As(err, &nde) {
		reason = nde.Reason
	}
	d.Skipped = append(d.Skipped, domain.Skip{Component: name, Reason: reason})

	s.logger.WarnContext(ctx, "component skipped", "component", name, "reason", reason)
	if s.hooks.OnComponentSkipped != nil {
		s.hooks.OnComponentSkipped(ctx, &domain.SkipEvent{
			EventBase: domain.EventBase{Timestamp: s.now(), Type: domain.EventComponentSkipped},
			Component: name,
			Reason:    reason,
		})
	}
}

// Curve samples the vapor pressure of one component over [tmin, tmax].
// n <= 0 uses the configured curve sampling. A curve containing a non-finite
// pressure fails with a *domain.NumericDomainError.
func (s *Service) Curve(ctx context.Context, name string, tmin, tmax float64, n int) (domain.Curve, error) {
	start := s.now()
	if err := ctx.Err(); err != nil {
		return domain.Curve{}, err
	}
	c, err := s.table.Lookup(name)
	if err != nil {
		return domain.Curve{}, err
	}
	if n <= 0 {
		n = s.curvePoints
	}
	if err := validateRange(tmin, tmax, n); err != nil {
		return domain.Curve{}, err
	}

	curve, err := curveAt(c, thermo.Linspace(tmin, tmax, n))
	if err != nil {
		return domain.Curve{}, err
	}
	s.emitComputed(ctx, OpCurve, 1, 0, start, false)
	return curve, nil
}

// BoilingTemperature finds the boiling temperature of one component at pressure (kPa).
func (s *Service) BoilingTemperature(ctx context.Context, name string, pressure float64) (domain.BoilingPoint, error) {
	start := s.now()
	if err := ctx.Err(); err != nil {
		return domain.BoilingPoint{}, err
	}
	c, err := s.table.Lookup(name)
	if err != nil {
		return domain.BoilingPoint{}, err
	}
	if err := validatePressure(pressure); err != nil {
		return domain.BoilingPoint{}, err
	}

	bp, err := s.boil(c, pressure)
	if err != nil {
		return domain.BoilingPoint{}, err
	}
	s.emitComputed(ctx, OpBoiling, 1, 0, start, false)
	return bp, nil
}

// Separation is the boiling temperature difference of pair at pressure (kPa).
func (s *Service) Separation(ctx context.Context, pair domain.Pair, pressure float64) (domain.Separation, error) {
	start := s.now()
	if err := ctx.Err(); err != nil {
		return domain.Separation{}, err
	}
	if err := validatePair(pair); err != nil {
		return domain.Separation{}, err
	}
	if err := validatePressure(pressure); err != nil {
		return domain.Separation{}, err
	}

	sep, err := s.separation(pair, pressure)
	if err != nil {
		return domain.Separation{}, err
	}
	s.emitComputed(ctx, OpSeparation, 2, 0, start, false)
	return sep, nil
}

// SeparationSweep evaluates the separation of pair over the pressure sweep.
// X is pressure (kPa), Y the difference (K).
func (s *Service) SeparationSweep(ctx context.Context, pair domain.Pair) ([]domain.Point, error) {
	start := s.now()
	if err := validatePair(pair); err != nil {
		return nil, err
	}
	pts, err := s.sweep(ctx, pair)
	if err != nil {
		return nil, err
	}
	s.emitComputed(ctx, OpSweep, 2, 0, start, false)
	return pts, nil
}

func (s *Service) boil(c domain.Component, pressure float64) (domain.BoilingPoint, error) {
	t, err := s.finder.Find(pressure, c.Coefficients)
	if err != nil {
		var nde *domain.NumericDomainError
		if errors.As(err, &nde) && nde.Component == "" {
			nde.Component = c.Name
		}
		return domain.BoilingPoint{}, err
	}
	return domain.BoilingPoint{Component: c.Name, Pressure: pressure, Temperature: t}, nil
}

func (s *Service) members(pair domain.Pair) (domain.Component, domain.Component, error) {
	first, err := s.table.Lookup(pair.First)
	if err != nil {
		return domain.Component{}, domain.Component{}, fmt.Errorf("pair %s: %w", pair.Key(), err)
	}
	second, err := s.table.Lookup(pair.Second)
	if err != nil {
		return domain.Component{}, domain.Component{}, fmt.Errorf("pair %s: %w", pair.Key(), err)
	}
	return first, second, nil
}

func (s *Service) separation(pair domain.Pair, pressure float64) (domain.Separation, error) {
	first, second, err := s.members(pair)
	if err != nil {
		return domain.Separation{}, err
	}
	return s.separate(pair, first, second, pressure)
}

func (s *Service) separate(pair domain.Pair, first, second domain.Component, pressure float64) (domain.Separation, error) {
	b1, err := s.boil(first, pressure)
	if err != nil {
		return domain.Separation{}, fmt.Errorf("pair %s: %w", pair.Key(), err)
	}
	b2, err := s.boil(second, pressure)
	if err != nil {
		return domain.Separation{}, fmt.Errorf("pair %s: %w", pair.Key(), err)
	}
	return domain.Separation{
		Pair:       pair,
		Label:      pair.Label(),
		Pressure:   pressure,
		First:      b1.Temperature,
		Second:     b2.Temperature,
		Difference: math.Abs(b2.Temperature - b1.Temperature),
	}, nil
}

func (s *Service) sweep(ctx context.Context, pair domain.Pair) ([]domain.Point, error) {
	first, second, err := s.members(pair)
	if err != nil {
		return nil, err
	}
	pressures := thermo.Linspace(domain.SweepPmin, domain.SweepPmax, domain.SweepPoints)
	pts := make([]domain.Point, 0, len(pressures))
	for _, p := range pressures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sep, err := s.separate(pair, first, second, p)
		if err != nil {
			return nil, err
		}
		pts = append(pts, domain.Point{X: p, Y: sep.Difference})
	}
	return pts, nil
}

func curveAt(c domain.Component, ts []float64) (domain.Curve, error) {
	ps := thermo.VaporPressures(ts, c.Coefficients)
	if bad := thermo.CountNonFinite(ps); bad > 0 {
		return domain.Curve{}, &domain.NumericDomainError{
			Component: c.Name,
			Reason:    fmt.Sprintf("%d of %d vapor pressures are not finite on [%g, %g] K", bad, len(ts), ts[0], ts[len(ts)-1]),
		}
	}
	pts := make([]domain.Point, len(ts))
	for i := range ts {
		pts[i] = domain.Point{X: ts[i], Y: ps[i]}
	}
	return domain.Curve{Component: c.Name, Points: pts}, nil
}

func validateRange(tmin, tmax float64, n int) error {
	if !thermo.IsFinite(tmin) || !thermo.IsFinite(tmax) {
		return fmt.Errorf("%w: temperature bounds must be finite, got [%v, %v]", domain.ErrInvalidParams, tmin, tmax)
	}
	if tmin > tmax {
		return fmt.Errorf("%w: tmin (%g) must not exceed tmax (%g)", domain.ErrInvalidParams, tmin, tmax)
	}
	if n < 2 || n > MaxCurvePoints {
		return fmt.Errorf("%w: points must be within [2, %d], got %d", domain.ErrInvalidParams, MaxCurvePoints, n)
	}
	return nil
}

func validatePressure(p float64) error {
	if !thermo.IsFinite(p) || p <= 0 {
		return fmt.Errorf("%w: pressure must be positive and finite, got %v", domain.ErrInvalidParams, p)
	}
	return nil
}

func validatePair(pair domain.Pair) error {
	if pair.First == "" || pair.Second == "" {
		return fmt.Errorf("%w: pair %q is incomplete", domain.ErrInvalidParams, pair.Key())
	}
	if pair.First == pair.Second {
		return fmt.Errorf("%w: pair members must differ, got %q twice", domain.ErrInvalidParams, pair.First)
	}
	return nil
}

func (s *Service) emitComputed(ctx context.Context, op string, components, skipped int, start time.Time, cached bool) {
	if s.hooks.OnComputed == nil {
		return
	}
	s.hooks.OnComputed(ctx, &domain.ComputeEvent{
		EventBase:  domain.EventBase{Timestamp: s.now(), Type: domain.EventComputed},
		Operation:  op,
		Components: components,
		Skipped:    skipped,
		Duration:   s.now().Sub(start),
		Cached:     cached,
	})
}
