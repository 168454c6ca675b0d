package dashboard

import (
	"log/slog"
	"time"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports"
	"github.com/aretw0/antoine/pkg/thermo"
)

// Option configures a Service.
type Option func(*Service)

// WithGrid sets the temperature grid of the boiling search.
func WithGrid(g thermo.Grid) Option {
	return func(s *Service) {
		s.finder.Grid = g
	}
}

// WithStrategy selects grid-only or bisection-refined boiling temperatures.
func WithStrategy(strategy thermo.Strategy) Option {
	return func(s *Service) {
		s.finder.Strategy = strategy
	}
}

// WithCurvePoints sets how many temperatures each pressure curve samples.
func WithCurvePoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.curvePoints = n
		}
	}
}

// WithCache stores computed dashboards in cache.
func WithCache(cache ports.ResultCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithHooks registers observability callbacks. Repeated calls are merged.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *Service) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source of emitted events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
