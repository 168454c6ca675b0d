// Package tsv reads the tab-separated coefficient table exported from the
// spreadsheet of component properties.
//
// The first row is a header whose columns after the first name one component
// each. Data rows 10 to 15 (0-indexed, header excluded) hold the a..f
// coefficients; other rows are ignored.
package tsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/antoine/pkg/domain"
)

const (
	// FirstCoefficientRow is the data row holding coefficient a.
	FirstCoefficientRow = 10
	// MinDataRows is the number of data rows a valid table must have.
	MinDataRows = FirstCoefficientRow + len(domain.CoefficientNames)
)

// Loader implements ports.TableLoader for a TSV file.
type Loader struct {
	Path string
}

// NewLoader creates a loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and parses the file.
func (l *Loader) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, &domain.ParseError{Source: l.Path, Row: -1, Column: -1, Msg: "cannot open table", Err: err}
	}
	defer f.Close()

	return Parse(f, l.Path)
}

// Parse reads a table from r. source names the input in errors.
func Parse(r io.Reader, source string) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	// Blank lines are skipped, so lines[i] keeps the physical line of records[i].
	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &domain.ParseError{Source: source, Line: perr.Line, Row: -1, Column: perr.Column, Msg: "malformed record", Err: err}
			}
			return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "cannot read table", Err: err}
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	if len(records) == 0 {
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "missing header row"}
	}

	header := records[0]
	if len(header) < 2 {
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "header has no component columns"}
	}
	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			return nil, &domain.ParseError{Source: source, Line: lines[0], Row: -1, Column: i + 1, Msg: "blank component name in header"}
		}
		names[i] = name
	}

	data, dataLines := records[1:], lines[1:]
	if len(data) < MinDataRows {
		return nil, &domain.ParseError{
			Source: source, Row: -1, Column: -1,
			Msg: fmt.Sprintf("expected at least %d data rows, found %d", MinDataRows, len(data)),
		}
	}

	values := make([][6]float64, len(names))
	for ci := range domain.CoefficientNames {
		row := FirstCoefficientRow + ci
		rec, line := data[row], dataLines[row]
		if len(rec) < len(header) {
			return nil, &domain.ParseError{
				Source: source, Line: line, Row: row, Column: len(rec),
				Msg: fmt.Sprintf("coefficient row %q has %d columns, header has %d", domain.CoefficientNames[ci], len(rec), len(header)),
			}
		}
		for j := range names {
			v, err := domain.ParseDecimal(rec[j+1])
			if err != nil {
				return nil, &domain.ParseError{
					Source: source, Line: line, Row: row, Column: j + 1,
					Msg: fmt.Sprintf("coefficient %s of %q is not numeric", domain.CoefficientNames[ci], names[j]),
					Err: err,
				}
			}
			values[j][ci] = v
		}
	}

	components := make([]domain.Component, len(names))
	for j, name := range names {
		components[j] = domain.Component{Name: name, Coefficients: domain.CoefficientsFromValues(values[j])}
	}
	table, err := domain.NewTable(components...)
	if err != nil {
		return nil, &domain.ParseError{Source: source, Row: -1, Column: -1, Msg: "invalid header", Err: err}
	}
	return table, nil
}
