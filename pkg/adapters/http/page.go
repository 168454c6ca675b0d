package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aretw0/antoine/pkg/chart"
	"github.com/aretw0/antoine/pkg/domain"
)

//go:embed web/dashboard.html
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/dashboard.html"))

type bounds struct {
	TminLower, TminUpper       float64
	TmaxLower, TmaxUpper       float64
	PtargetLower, PtargetUpper float64
	StepT                      float64
}

type componentOption struct {
	Name    string
	Checked bool
}

type pairChoice struct {
	Key      string
	Label    string
	Selected bool
}

type chartLink struct {
	Src template.URL
	Alt string
}

type pageData struct {
	Error      string
	Params     domain.Params
	Bounds     bounds
	Components []componentOption
	Pairs      []pairChoice
	Dashboard  *domain.Dashboard
	Charts     []chartLink
}

// GetDashboardPage handles GET /, the interactive dashboard.
func (s *Server) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	data := pageData{Bounds: bounds{
		TminLower: domain.TminLower, TminUpper: domain.TminUpper,
		TmaxLower: domain.TmaxLower, TmaxUpper: domain.TmaxUpper,
		PtargetLower: domain.PtargetLower, PtargetUpper: domain.PtargetUpper,
		StepT: domain.SliderStepT,
	}}

	params, err := ParseParams(r.URL.Query())
	if err == nil {
		data.Dashboard, err = s.Engine.Compute(r.Context(), params)
	}
	if err != nil {
		status = StatusFor(err)
		data.Error = err.Error()
		s.logger.Debug("dashboard rejected", "status", status, "error", err)
		params = domain.DefaultParams()
	}
	data.Params = params

	table := s.Engine.Table()
	selected := make(map[string]bool)
	for _, n := range params.Components {
		selected[n] = true
	}
	for _, name := range table.Names() {
		data.Components = append(data.Components, componentOption{
			Name:    name,
			Checked: params.Components == nil || selected[name],
		})
	}

	current := params.Pair
	if current.IsZero() {
		current, _ = table.DefaultPair()
	}
	for _, p := range table.Pairs() {
		data.Pairs = append(data.Pairs, pairChoice{
			Key:      p.Key(),
			Label:    p.OptionLabel(),
			Selected: p == current,
		})
	}

	if data.Dashboard != nil {
		query := encodeParams(params)
		for _, kind := range chart.Kinds {
			data.Charts = append(data.Charts, chartLink{
				Src: template.URL("/charts/" + string(kind) + ".svg?" + query),
				Alt: string(kind) + " chart",
			})
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("dashboard template failed", "error", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// encodeParams is the inverse of ParseParams.
func encodeParams(p domain.Params) string {
	q := url.Values{}
	q.Set("tmin", strconv.FormatFloat(p.Tmin, 'g', -1, 64))
	q.Set("tmax", strconv.FormatFloat(p.Tmax, 'g', -1, 64))
	q.Set("ptarget", strconv.FormatFloat(p.Ptarget, 'g', -1, 64))
	if p.Components != nil {
		q.Set("selection", "1")
		for _, n := range p.Components {
			q.Add("components", n)
		}
	}
	if !p.Pair.IsZero() {
		q.Set("pair", p.Pair.Key())
	}
	return q.Encode()
}
