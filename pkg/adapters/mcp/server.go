package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/latword"
	"github.com/aretw0/latword/internal/logging"
	"github.com/aretw0/latword/pkg/fst"
	"github.com/aretw0/latword/pkg/lattice"
	"github.com/aretw0/latword/pkg/observability"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/aretw0/latword/pkg/semiring"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// InspectArgs are the arguments of the inspect_lattice tool.
type InspectArgs struct {
	Archive string `json:"archive"`
}

// EntryInfo summarises one archive entry.
type EntryInfo struct {
	Key     string      `json:"key" jsonschema_description:"Entry key"`
	Summary fst.Summary `json:"summary" jsonschema_description:"State, arc and final counts"`
}

// InspectResponse is the result of inspect_lattice.
type InspectResponse struct {
	Entries []EntryInfo `json:"entries"`
}

// Server exposes lattice expansion as an MCP server.
type Server struct {
	mcpServer *server.MCPServer
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records expansions made through the tools.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("latword-mcp", strings.TrimSpace(latword.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer.AddTools(s.tools()...)
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

		s.logger.Info("shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) tools() []server.ServerTool {
	expandTool := mcp.NewTool("expand_lattice",
		mcp.WithDescription("Expand a character-level lattice archive into word-level arcs. Returns the expanded archive and the symbol table mapping ids to label sequences."),
		mcp.WithString("archive", mcp.Required(), mcp.Description("Lattice archive text: key line, 'src dst ilabel olabel [graph,acoustic]' arcs, 'state [weight]' finals, blank line between entries")),
		mcp.WithString("delimiters", mcp.Description("Space-separated delimiter labels, e.g. \"3 4\". Epsilon (0) is not allowed")),
		mcp.WithNumber("max_length", mcp.Description("Maximum number of labels per word (optional, unbounded by default)")),
		mcp.WithString("match_side", mcp.Description("Arc side checked against delimiters: output (default) or input")),
		mcp.WithNumber("beam", mcp.Description("Pruning beam applied before expansion (optional)")),
		mcp.WithNumber("acoustic_scale", mcp.Description("Acoustic scale used while pruning (default 1)")),
		mcp.WithNumber("graph_scale", mcp.Description("Graph scale used while pruning (default 1)")),
		mcp.WithOutputSchema[pipeline.Response](),
	)

	inspectTool := mcp.NewTool("inspect_lattice",
		mcp.WithDescription("Count states, arcs and final states of every entry in a lattice archive."),
		mcp.WithString("archive", mcp.Required(), mcp.Description("Lattice archive text")),
		mcp.WithOutputSchema[InspectResponse](),
	)

	return []server.ServerTool{
		{Tool: expandTool, Handler: mcp.NewStructuredToolHandler(s.handleExpand)},
		{Tool: inspectTool, Handler: mcp.NewStructuredToolHandler(s.handleInspect)},
	}
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args pipeline.Request) (pipeline.Response, error) {
	opts := []pipeline.Option{pipeline.WithLogger(s.logger)}
	if s.metrics != nil {
		opts = append(opts, pipeline.WithHooks(s.metrics.Hooks(pipeline.Hooks{})))
	}
	resp, err := pipeline.ExpandArchive(ctx, args, opts...)
	if err != nil {
		s.logger.Warn("MCP expand_lattice failed", "error", err)
		return pipeline.Response{}, err
	}
	return resp, nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args InspectArgs) (InspectResponse, error) {
	var sr semiring.Lattice
	entries, err := lattice.ReadAll[pipeline.Weight](strings.NewReader(args.Archive), sr, lattice.WithMaxStates(pipeline.MaxRequestStates))
	if err != nil {
		return InspectResponse{}, fmt.Errorf("%w: %v", pipeline.ErrInvalidRequest, err)
	}
	resp := InspectResponse{Entries: make([]EntryInfo, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, EntryInfo{Key: e.Key, Summary: fst.Info[pipeline.Weight](e.Automaton, sr)})
	}
	return resp, nil
}
