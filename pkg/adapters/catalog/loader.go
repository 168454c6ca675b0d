package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/antoine/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the catalog syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// document is the top-level catalog shape:
//
//	components:
//	  - name: Water
//	    a: 66.7412
//	    b: -7258.2
//	    ...
type document struct {
	Components []map[string]any `json:"components" yaml:"components"`
}

// Loader implements ports.TableLoader for YAML or JSON catalog files.
type Loader struct {
	Path   string
	Format Format
}

// NewLoader creates a catalog loader, inferring the format from the extension.
// Unknown extensions default to YAML.
func NewLoader(path string) *Loader {
	format, ok := FormatFromPath(path)
	if !ok {
		format = FormatYAML
	}
	return &Loader{Path: path, Format: format}
}

// Load reads and decodes the catalog.
func (l *Loader) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, &domain.ParseError{Source: l.Path, Row: -1, Column: -1, Msg: "cannot read catalog", Err: err}
	}
	return Parse(data, l.Format, l.Path)
}

// Parse decodes catalog bytes. Component order follows the document.
func Parse(data []byte, format Format, source string) (*domain.Table, error) {
	var doc document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: fmt.Sprintf("unsupported format %q", format)}
	}
	if err != nil {
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "malformed catalog", Err: err}
	}
	if len(doc.Components) == 0 {
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "catalog has no components"}
	}

	components := make([]domain.Component, 0, len(doc.Components))
	for i, raw := range doc.Components {
		name, _ := raw["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &domain.ParseError{Source: source, Row: i, Column: -1, Msg: "component name is missing"}
		}
		k, err := DecodeCoefficients(raw)
		if err != nil {
			return nil, &domain.ParseError{Source: source, Row: i, Column: -1, Msg: fmt.Sprintf("invalid coefficients for %q", name), Err: err}
		}
		components = append(components, domain.Component{Name: name, Coefficients: k})
	}

	table, err := domain.NewTable(components...)
	if err != nil {
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "invalid catalog", Err: err}
	}
	return table, nil
}
