package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/antoine/pkg/domain"
)

// Loader implements ports.TableLoader using components held in memory.
type Loader struct {
	components []domain.Component
}

// NewFromComponents creates a new memory loader from domain objects.
// Validation is deferred to Load so construction never fails.
func NewFromComponents(components ...domain.Component) *Loader {
	cp := make([]domain.Component, len(components))
	copy(cp, components)
	return &Loader{components: cp}
}

// NewFromMap creates a loader from name → coefficients in the order given by names.
func NewFromMap(names []string, coefficients map[string]domain.Coefficients) (*Loader, error) {
	components := make([]domain.Component, 0, len(names))
	for _, n := range names {
		k, ok := coefficients[n]
		if !ok {
			return nil, fmt.Errorf("missing coefficients for %q", n)
		}
		components = append(components, domain.Component{Name: n, Coefficients: k})
	}
	return &Loader{components: components}, nil
}

// Load builds the table.
func (l *Loader) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := domain.NewTable(l.components...)
	if err != nil {
		return nil, &domain.ParseError{Source: "memory", Row: -1, Column: -1, Msg: "invalid components", Err: err}
	}
	return table, nil
}
