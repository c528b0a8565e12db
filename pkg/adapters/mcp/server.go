package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/pathrace"
	"github.com/aretw0/pathrace/internal/config"
	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/render"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Point is a [row, col] pair.
type Point [2]int

func point(c domain.Coordinate) Point { return Point{c.Row, c.Col} }

// AlgorithmSummary is one run without its step trace.
type AlgorithmSummary struct {
	Name    string         `json:"name" jsonschema_description:"Algorithm label, e.g. Dijkstra or AStar:manhattan"`
	Metrics domain.Metrics `json:"metrics"`
	Path    []Point        `json:"path,omitempty" jsonschema_description:"Cells from start to end, empty when no path exists"`
	Steps   int            `json:"steps" jsonschema_description:"Number of recorded search steps"`
	Error   string         `json:"error,omitempty"`
}

// CompareResponse is the structured result of compare_algorithms.
type CompareResponse struct {
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Start         Point              `json:"start"`
	End           Point              `json:"end"`
	AllowDiagonal bool               `json:"allow_diagonal"`
	Obstacles     int                `json:"obstacles" jsonschema_description:"Number of blocked cells"`
	Algorithms    []AlgorithmSummary `json:"algorithms"`
	Report        string             `json:"report" jsonschema_description:"Markdown table of the metrics"`
}

// Server exposes comparisons as MCP tools.
type Server struct {
	comparator *compare.Comparator
	catalog    *config.Catalog
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. Stdio servers must log to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCatalog replaces the built-in preset catalog.
func WithCatalog(c *config.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(c *compare.Comparator, opts ...Option) (*Server, error) {
	s := &Server{
		comparator: c,
		logger:     logging.NewNop(),
		mcpServer:  server.NewMCPServer("pathrace-mcp", strings.TrimSpace(pathrace.Version), server.WithRecovery()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.comparator == nil {
		s.comparator = compare.New(compare.WithLogger(s.logger))
	}
	// Tool results carry summaries only.
	s.comparator = s.comparator.With(compare.WithoutSteps())
	if s.catalog == nil {
		catalog, err := config.LoadCatalog()
		if err != nil {
			return nil, err
		}
		s.catalog = catalog
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
	compareTool := mcp.NewTool("compare_algorithms",
		mcp.WithDescription("Run Dijkstra and A* variants over one grid and compare nodes visited, path length, cost and time. "+
			"Either name a preset or describe the grid; missing fields default to a 40x40 grid from corner to corner."),
		mcp.WithString("preset", mcp.Description("Preset grid name (see list_presets). Only 'algorithms' may be combined with it.")),
		mcp.WithNumber("width", mcp.Description("Grid columns"), mcp.Min(1), mcp.Max(domain.MaxDimension)),
		mcp.WithNumber("height", mcp.Description("Grid rows"), mcp.Min(1), mcp.Max(domain.MaxDimension)),
		mcp.WithArray("start", mcp.Description("Start cell as [row, col]")),
		mcp.WithArray("end", mcp.Description("End cell as [row, col]")),
		mcp.WithArray("obstacles", mcp.Description("Blocked cells as [[row, col], ...]")),
		mcp.WithBoolean("allow_diagonal", mcp.Description("Allow 8-connected moves costing sqrt(2)")),
		mcp.WithNumber("density", mcp.Description("Fraction of cells to block at random, in [0, 1)")),
		mcp.WithNumber("seed", mcp.Description("Seed for random obstacles")),
		mcp.WithArray("algorithms", mcp.Description(`Algorithms to run: "Dijkstra", "AStar:manhattan", "AStar:euclidean", "AStar:chebyshev"`),
			mcp.WithStringItems()),
		mcp.WithOutputSchema[CompareResponse](),
	)
	s.mcpServer.AddTool(compareTool, mcp.NewStructuredToolHandler(s.handleCompare))

	s.mcpServer.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the preset grids accepted by compare_algorithms."),
	), s.handleListPresets)
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CompareResponse, error) {
	req, err := s.requestFromArgs(args)
	if err != nil {
		return CompareResponse{}, err
	}
	res, err := s.comparator.Compare(ctx, req)
	if err != nil {
		s.logger.Warn("MCP compare rejected", "err", err)
		return CompareResponse{}, err
	}
	return summarize(res), nil
}

// requestFromArgs builds a request from a preset or from explicit fields.
func (s *Server) requestFromArgs(args map[string]interface{}) (domain.ComparisonRequest, error) {
	fields := make(map[string]any, len(args))
	for k, v := range args {
		fields[k] = v
	}
	name, _ := fields["preset"].(string)
	delete(fields, "preset")
	if name == "" {
		return config.DecodeRequestDefaults(fields)
	}

	p, err := s.catalog.Get(name)
	if err != nil {
		return domain.ComparisonRequest{}, err
	}
	var override struct {
		Algorithms []string `mapstructure:"algorithms"`
	}
	if err := config.Decode(fields, &override); err != nil {
		return domain.ComparisonRequest{}, &domain.InvalidRequestError{Field: "preset", Reason: "only algorithms may be combined with a preset: " + err.Error()}
	}
	return p.Request(override.Algorithms...)
}

func summarize(res *domain.ComparisonResult) CompareResponse {
	g := res.Grid
	out := CompareResponse{
		Width:         g.Width(),
		Height:        g.Height(),
		Start:         point(g.Start()),
		End:           point(g.End()),
		AllowDiagonal: g.AllowDiagonal(),
		Obstacles:     len(g.Obstacles()),
		Algorithms:    make([]AlgorithmSummary, len(res.Algorithms)),
		Report:        render.Report(res),
	}
	for i, a := range res.Algorithms {
		sum := AlgorithmSummary{
			Name:    a.Name,
			Metrics: a.Metrics,
			Steps:   a.StepCount(),
			Error:   a.Error,
		}
		for _, c := range a.Path {
			sum.Path = append(sum.Path, point(c))
		}
		out.Algorithms[i] = sum
	}
	return out
}

// presetEntry is a preset as listed to clients.
type presetEntry struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Start         Point    `json:"start"`
	End           Point    `json:"end"`
	AllowDiagonal bool     `json:"allow_diagonal"`
	Algorithms    []string `json:"algorithms"`
}

func (s *Server) presetEntries() []presetEntry {
	presets := s.catalog.List()
	out := make([]presetEntry, len(presets))
	for i, p := range presets {
		out[i] = presetEntry{
			Name:          p.Name,
			Description:   p.Description,
			Width:         p.Width,
			Height:        p.Height,
			Start:         point(p.Start),
			End:           point(p.End),
			AllowDiagonal: p.AllowDiagonal,
			Algorithms:    p.Algorithms,
		}
	}
	return out
}

func (s *Server) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.presetEntries())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list presets failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("pathrace://presets", "Preset grids",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.presetEntries())
		if err != nil {
			return nil, fmt.Errorf("failed to encode presets: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "pathrace://presets",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
