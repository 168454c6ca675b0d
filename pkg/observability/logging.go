package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/antoine/pkg/domain"
)

// LogHooks writes one debug record per service event.
// Skips are already logged at WARN by the service.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnComputed: func(ctx context.Context, e *domain.ComputeEvent) {
			logger.DebugContext(ctx, "computed",
				"operation", e.Operation,
				"components", e.Components,
				"skipped", e.Skipped,
				"duration", e.Duration,
				"cached", e.Cached,
			)
		},
		OnCacheLookup: func(ctx context.Context, e *domain.CacheEvent) {
			logger.DebugContext(ctx, "cache_lookup", "key", e.Key, "hit", e.Hit)
		},
	}
}
