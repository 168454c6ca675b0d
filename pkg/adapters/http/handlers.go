package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/antoine/pkg/chart"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// componentList is the body of GET /api/components.
type componentList struct {
	Components []domain.Component `json:"components"`
	Pairs      []pairOption       `json:"pairs"`
}

type pairOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

const maxChartSize = 4096

type sweepResponse struct {
	Pair   domain.Pair    `json:"pair"`
	Points []domain.Point `json:"points"`
}

func pairOptions(t *domain.Table) []pairOption {
	pairs := t.Pairs()
	out := make([]pairOption, len(pairs))
	for i, p := range pairs {
		out[i] = pairOption{Key: p.Key(), Label: p.OptionLabel()}
	}
	return out
}

// ListComponents handles GET /api/components.
func (s *Server) ListComponents(w http.ResponseWriter, r *http.Request) {
	t := s.Engine.Table()
	writeJSON(w, http.StatusOK, componentList{
		Components: t.Components(),
		Pairs:      pairOptions(t),
	})
}

// GetComponent handles GET /api/components/{name}.
func (s *Server) GetComponent(w http.ResponseWriter, r *http.Request) {
	c, err := s.Engine.Table().Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetVaporPressure handles GET /api/components/{name}/vapor-pressure.
func (s *Server) GetVaporPressure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tmin, err := floatParam(q, "tmin", domain.DefaultTmin)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tmax, err := floatParam(q, "tmax", domain.DefaultTmax)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	points, err := intParam(q, "points", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	curve, err := s.Engine.Curve(r.Context(), chi.URLParam(r, "name"), tmin, tmax, points)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, curve)
}

// GetBoiling handles GET /api/components/{name}/boiling.
func (s *Server) GetBoiling(w http.ResponseWriter, r *http.Request) {
	p, err := floatParam(r.URL.Query(), "pressure", domain.DefaultPtarget)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	bp, err := s.Engine.BoilingTemperature(r.Context(), chi.URLParam(r, "name"), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bp)
}

// GetSeparation handles GET /api/separation.
func (s *Server) GetSeparation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pair, err := s.pairParam(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := floatParam(q, "pressure", domain.DefaultPtarget)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sep, err := s.Engine.Separation(r.Context(), pair, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sep)
}

// GetSeparationSweep handles GET /api/separation/sweep.
func (s *Server) GetSeparationSweep(w http.ResponseWriter, r *http.Request) {
	pair, err := s.pairParam(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	points, err := s.Engine.SeparationSweep(r.Context(), pair)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sweepResponse{Pair: pair, Points: points})
}

// GetDashboard handles GET /api/dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	params, err := ParseParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.Engine.Compute(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// GetChart handles GET /charts/{chart}.svg.
func (s *Server) GetChart(w http.ResponseWriter, r *http.Request) {
	kind, err := chart.ParseKind(chi.URLParam(r, "chart"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	params, err := ParseParams(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	width, err := intParam(q, "width", chart.DefaultWidth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := intParam(q, "height", chart.DefaultHeight)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if width <= 0 || width > maxChartSize || height <= 0 || height > maxChartSize {
		s.writeError(w, r, fmt.Errorf("%w: chart size must be within 1..%d", domain.ErrInvalidParams, maxChartSize))
		return
	}
	d, err := s.Engine.Compute(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", chart.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	if err := chart.Render(w, kind, d, chart.WithSize(width, height)); err != nil {
		s.logger.Error("chart render failed", "chart", kind, "error", err)
	}
}

// ParseParams reads dashboard parameters from a query string.
// Numbers accept a comma decimal separator. Every components value is one
// whole name, since names such as "1,3-Butadiene" contain commas. When the form
// marker "selection" is present without any component, the selection is empty
// rather than every component.
func ParseParams(q url.Values) (domain.Params, error) {
	p := domain.DefaultParams()
	var err error
	if p.Tmin, err = floatParam(q, "tmin", p.Tmin); err != nil {
		return p, err
	}
	if p.Tmax, err = floatParam(q, "tmax", p.Tmax); err != nil {
		return p, err
	}
	if p.Ptarget, err = floatParam(q, "ptarget", p.Ptarget); err != nil {
		return p, err
	}

	if raw, ok := q["components"]; ok {
		p.Components = []string{}
		for _, name := range raw {
			if name = strings.TrimSpace(name); name != "" {
				p.Components = append(p.Components, name)
			}
		}
	} else if q.Has("selection") {
		p.Components = []string{}
	}

	if key := strings.TrimSpace(q.Get("pair")); key != "" {
		if p.Pair, err = domain.ParsePair(key); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

func (s *Server) pairParam(q url.Values) (domain.Pair, error) {
	if key := strings.TrimSpace(q.Get("pair")); key != "" {
		return domain.ParsePair(key)
	}
	pair, ok := s.Engine.Table().DefaultPair()
	if !ok {
		return domain.Pair{}, fmt.Errorf("%w: a pair needs at least two components", domain.ErrInvalidParams)
	}
	return pair, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := domain.ParseDecimal(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidParams, name, raw)
	}
	return v, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", domain.ErrInvalidParams, name, raw)
	}
	return v, nil
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParams), errors.Is(err, domain.ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrComponentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNumericDomain):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
