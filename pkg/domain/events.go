package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventComponentSkipped EventType = "component_skipped"
	EventComputed         EventType = "computed"
	EventCacheLookup      EventType = "cache_lookup"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SkipEvent is emitted when a component is dropped from a recomputation.
type SkipEvent struct {
	EventBase
	Component string `json:"component"`
	Reason    string `json:"reason"`
}

// ComputeEvent is emitted after an operation of the dashboard service completes.
type ComputeEvent struct {
	EventBase
	Operation  string        `json:"operation"`
	Components int           `json:"components"`
	Skipped    int           `json:"skipped"`
	Duration   time.Duration `json:"duration"`
	Cached     bool          `json:"cached,omitempty"`
}

// CacheEvent reports the outcome of a result cache lookup.
type CacheEvent struct {
	EventBase
	Key string `json:"key"`
	Hit bool   `json:"hit"`
}

// Hooks defines callbacks for service observability.
// Nil callbacks are ignored.
type Hooks struct {
	OnComponentSkipped func(context.Context, *SkipEvent)
	OnComputed         func(context.Context, *ComputeEvent)
	OnCacheLookup      func(context.Context, *CacheEvent)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnComponentSkipped: chain(h.OnComponentSkipped, other.OnComponentSkipped),
		OnComputed:         chain(h.OnComputed, other.OnComputed),
		OnCacheLookup:      chain(h.OnCacheLookup, other.OnCacheLookup),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
