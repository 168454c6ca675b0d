package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/antoine"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ComponentsURI is the resource exposing the coefficient table.
const ComponentsURI = "antoine://components"

// Engine is the computation surface exposed as MCP tools.
// *antoine.Engine satisfies it.
type Engine interface {
	Table() *domain.Table
	Compute(ctx context.Context, params domain.Params) (*domain.Dashboard, error)
	Curve(ctx context.Context, name string, tmin, tmax float64, points int) (domain.Curve, error)
	BoilingTemperature(ctx context.Context, name string, pressure float64) (domain.BoilingPoint, error)
	Separation(ctx context.Context, pair domain.Pair, pressure float64) (domain.Separation, error)
	SeparationSweep(ctx context.Context, pair domain.Pair) ([]domain.Point, error)
}

// ComponentsResponse lists the table in order with every selectable pair.
type ComponentsResponse struct {
	Components []domain.Component `json:"components" jsonschema_description:"Components and their Antoine coefficients, in table order"`
	Pairs      []string           `json:"pairs" jsonschema_description:"Pair keys (First|Second) accepted by compare_pair"`
}

// CompareResponse is the boiling separation of a pair, optionally over the pressure sweep.
type CompareResponse struct {
	Separation domain.Separation `json:"separation" jsonschema_description:"Boiling temperatures and their absolute difference at the requested pressure"`
	Sweep      []domain.Point    `json:"sweep,omitempty" jsonschema_description:"Difference (K) against pressure (kPa) from 10 to 5000 kPa"`
}

type curveArgs struct {
	Name   string   `json:"name"`
	Tmin   *float64 `json:"tmin,omitempty"`
	Tmax   *float64 `json:"tmax,omitempty"`
	Points int      `json:"points,omitempty"`
}

type boilingArgs struct {
	Name     string   `json:"name"`
	Pressure *float64 `json:"pressure,omitempty"`
}

type compareArgs struct {
	First    string   `json:"first,omitempty"`
	Second   string   `json:"second,omitempty"`
	Pressure *float64 `json:"pressure,omitempty"`
	Sweep    bool     `json:"sweep,omitempty"`
}

type dashboardArgs struct {
	Tmin       *float64  `json:"tmin,omitempty"`
	Tmax       *float64  `json:"tmax,omitempty"`
	Ptarget    *float64  `json:"ptarget,omitempty"`
	Components *[]string `json:"components,omitempty"`
	First      string    `json:"first,omitempty"`
	Second     string    `json:"second,omitempty"`
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("antoine-mcp", strings.TrimSpace(antoine.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("MCP Server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_components",
		mcp.WithDescription("List the components of the coefficient table and the pairs that can be compared."),
		mcp.WithOutputSchema[ComponentsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListComponents))

	s.mcpServer.AddTool(mcp.NewTool("vapor_pressure",
		mcp.WithDescription("Sample the vapor pressure (kPa) of a component over a temperature range (K)."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Component name")),
		mcp.WithNumber("tmin", mcp.Description("Lower temperature in K (default 250)")),
		mcp.WithNumber("tmax", mcp.Description("Upper temperature in K (default 550)")),
		mcp.WithNumber("points", mcp.Description("Number of samples (default 300)")),
		mcp.WithOutputSchema[domain.Curve](),
	), mcp.NewStructuredToolHandler(s.handleVaporPressure))

	s.mcpServer.AddTool(mcp.NewTool("boiling_temperature",
		mcp.WithDescription("Find the temperature (K) at which a component's vapor pressure equals the given pressure."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Component name")),
		mcp.WithNumber("pressure", mcp.Description("Pressure in kPa (default 101.325)")),
		mcp.WithOutputSchema[domain.BoilingPoint](),
	), mcp.NewStructuredToolHandler(s.handleBoiling))

	s.mcpServer.AddTool(mcp.NewTool("compare_pair",
		mcp.WithDescription("Compare the boiling temperatures of two components. Defaults to the first two components of the table."),
		mcp.WithString("first", mcp.Description("First component")),
		mcp.WithString("second", mcp.Description("Second component")),
		mcp.WithNumber("pressure", mcp.Description("Pressure in kPa (default 101.325)")),
		mcp.WithBoolean("sweep", mcp.Description("Also return the difference over 10 to 5000 kPa")),
		mcp.WithOutputSchema[CompareResponse](),
	), mcp.NewStructuredToolHandler(s.handleCompare))

	s.mcpServer.AddTool(mcp.NewTool("dashboard",
		mcp.WithDescription("Recompute the full dashboard: curves, boiling points, pair separation and skipped components."),
		mcp.WithNumber("tmin", mcp.Description("Lower temperature in K (default 250)")),
		mcp.WithNumber("tmax", mcp.Description("Upper temperature in K (default 550)")),
		mcp.WithNumber("ptarget", mcp.Description("Target pressure in kPa (default 101.325)")),
		mcp.WithArray("components", mcp.WithStringItems(), mcp.Description("Selected component names; omit for every component")),
		mcp.WithString("first", mcp.Description("First member of the compared pair")),
		mcp.WithString("second", mcp.Description("Second member of the compared pair")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args dashboardArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		d, err := s.handleDashboard(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return dashboardResult(d), nil
	})
}

// dashboardResult encodes d as the text content of a tool result. An encoding
// failure, such as a non-finite value, becomes a tool error.
func dashboardResult(d *domain.Dashboard) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(d)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode dashboard: %v", err))
	}
	return mcp.NewToolResultText(string(jsonBytes))
}

func (s *Server) handleListComponents(ctx context.Context, request mcp.CallToolRequest, _ map[string]any) (ComponentsResponse, error) {
	t := s.engine.Table()
	pairs := t.Pairs()
	resp := ComponentsResponse{
		Components: t.Components(),
		Pairs:      make([]string, len(pairs)),
	}
	for i, p := range pairs {
		resp.Pairs[i] = p.Key()
	}
	return resp, nil
}

func (s *Server) handleVaporPressure(ctx context.Context, request mcp.CallToolRequest, args curveArgs) (domain.Curve, error) {
	return s.engine.Curve(ctx, args.Name,
		orDefault(args.Tmin, domain.DefaultTmin),
		orDefault(args.Tmax, domain.DefaultTmax),
		args.Points)
}

func (s *Server) handleBoiling(ctx context.Context, request mcp.CallToolRequest, args boilingArgs) (domain.BoilingPoint, error) {
	return s.engine.BoilingTemperature(ctx, args.Name, orDefault(args.Pressure, domain.DefaultPtarget))
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest, args compareArgs) (CompareResponse, error) {
	pair, err := s.pair(args.First, args.Second)
	if err != nil {
		return CompareResponse{}, err
	}
	sep, err := s.engine.Separation(ctx, pair, orDefault(args.Pressure, domain.DefaultPtarget))
	if err != nil {
		return CompareResponse{}, err
	}
	resp := CompareResponse{Separation: sep}
	if args.Sweep {
		if resp.Sweep, err = s.engine.SeparationSweep(ctx, pair); err != nil {
			return CompareResponse{}, err
		}
	}
	return resp, nil
}

func (s *Server) handleDashboard(ctx context.Context, args dashboardArgs) (*domain.Dashboard, error) {
	params := domain.Params{
		Tmin:    orDefault(args.Tmin, domain.DefaultTmin),
		Tmax:    orDefault(args.Tmax, domain.DefaultTmax),
		Ptarget: orDefault(args.Ptarget, domain.DefaultPtarget),
	}
	if args.Components != nil {
		params.Components = []string{}
		for _, name := range *args.Components {
			if name = strings.TrimSpace(name); name != "" {
				params.Components = append(params.Components, name)
			}
		}
	}
	if args.First != "" || args.Second != "" {
		params.Pair = domain.Pair{First: args.First, Second: args.Second}
	}
	return s.engine.Compute(ctx, params)
}

// pair falls back to the table's first two components when neither member is given.
func (s *Server) pair(first, second string) (domain.Pair, error) {
	if first == "" && second == "" {
		p, ok := s.engine.Table().DefaultPair()
		if !ok {
			return domain.Pair{}, fmt.Errorf("%w: a pair needs at least two components", domain.ErrInvalidParams)
		}
		return p, nil
	}
	if first == "" || second == "" {
		return domain.Pair{}, fmt.Errorf("%w: both first and second are required", domain.ErrInvalidParams)
	}
	return domain.Pair{First: first, Second: second}, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ComponentsURI, "Antoine coefficient table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Table().Components())
		if err != nil {
			return nil, fmt.Errorf("failed to encode table: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ComponentsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
