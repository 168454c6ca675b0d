package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/antoine/pkg/adapters/catalog"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to the TableLoader interface.
// Each document is one component.
type Loader struct {
	Repo   *loam.TypedRepository[ComponentMetadata]
	source string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ComponentMetadata]) *Loader {
	return &Loader{
		Repo:   repo,
		source: "loam",
	}
}

// Open initializes a read-only Loam repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric types consistent (json.Number) across
	// Markdown and JSON documents. The table is never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	l := New(loam.NewTypedRepository[ComponentMetadata](repo))
	l.source = absPath
	return l, nil
}

// Load lists every document and builds the table ordered by document ID.
func (l *Loader) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, &domain.ParseError{Source: l.source, Row: -1, Column: -1, Msg: "loam list failed", Err: err}
	}

	ids := make([]string, 0, len(docs))
	byID := make(map[string]int, len(docs))
	for i, doc := range docs {
		ids = append(ids, doc.ID)
		byID[doc.ID] = i
	}
	sort.Strings(ids)

	components := make([]domain.Component, 0, len(docs))
	for row, id := range ids {
		doc := docs[byID[id]]

		name := strings.TrimSpace(doc.Data.Name)
		if name == "" {
			name = trimExtension(doc.ID)
		}
		k, err := catalog.DecodeCoefficients(doc.Data.Coefficients)
		if err != nil {
			return nil, &domain.ParseError{Source: l.source, Row: row, Column: -1, Msg: fmt.Sprintf("invalid coefficients in %s", doc.ID), Err: err}
		}
		components = append(components, domain.Component{Name: name, Coefficients: k})
	}

	if len(components) == 0 {
		return nil, &domain.ParseError{Source: l.source, Row: -1, Column: -1, Msg: "repository has no components"}
	}

	table, err := domain.NewTable(components...)
	if err != nil {
		return nil, &domain.ParseError{Source: l.source, Row: -1, Column: -1, Msg: "invalid components", Err: err}
	}
	return table, nil
}

func trimExtension(id string) string {
	base := filepath.Base(filepath.ToSlash(id))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Watch emits the ID of every changed component document.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
