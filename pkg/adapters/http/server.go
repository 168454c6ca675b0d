package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/antoine"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/observability"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.yaml
var specYAML []byte

// Engine is the computation surface served over HTTP.
// *antoine.Engine satisfies it.
type Engine interface {
	Table() *domain.Table
	Compute(ctx context.Context, params domain.Params) (*domain.Dashboard, error)
	Curve(ctx context.Context, name string, tmin, tmax float64, points int) (domain.Curve, error)
	BoilingTemperature(ctx context.Context, name string, pressure float64) (domain.BoilingPoint, error)
	Separation(ctx context.Context, pair domain.Pair, pressure float64) (domain.Separation, error)
	SeparationSweep(ctx context.Context, pair domain.Pair) ([]domain.Point, error)
}

// Server routes dashboard, chart and JSON API requests to an Engine.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	metrics *observability.Metrics
	logger  *slog.Logger
	spec    *openapi3.T
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes /metrics and instruments every route.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer validates the embedded OpenAPI document and builds a server.
func NewServer(engine Engine, opts ...Option) (*Server, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		spec:    spec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewHandler is NewServer followed by Handler.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.routes())
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/", s.GetDashboardPage)
	r.Get("/charts/{chart}.svg", s.GetChart)

	r.Route("/api", func(r chi.Router) {
		r.Get("/components", s.ListComponents)
		r.Get("/components/{name}", s.GetComponent)
		r.Get("/components/{name}/vapor-pressure", s.GetVaporPressure)
		r.Get("/components/{name}/boiling", s.GetBoiling)
		r.Get("/separation", s.GetSeparation)
		r.Get("/separation/sweep", s.GetSeparationSweep)
		r.Get("/dashboard", s.GetDashboard)
	})

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(specYAML)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	return r
}

// Notify pushes a table change to every /events subscriber.
func (s *Server) Notify(event string) {
	s.Streams.Broadcast(TopicTable, event)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Antoine API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "antoine-http",
		"version":     strings.TrimSpace(antoine.Version),
		"api_version": apiVersion,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
