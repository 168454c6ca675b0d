package ports

import (
	"context"

	"github.com/aretw0/antoine/pkg/domain"
)

// TableLoader defines how the service retrieves the coefficient table.
// This allows the source (TSV, catalog, Loam, Memory) to be decoupled.
type TableLoader interface {
	// Load reads the whole table. Malformed sources fail with an error matching
	// domain.ErrParse.
	Load(ctx context.Context) (*domain.Table, error)
}

// Watchable is implemented by loaders that can report source changes.
type Watchable interface {
	// Watch emits an identifier of every changed document until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
