package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/latword"
	"github.com/aretw0/latword/internal/logging"
	"github.com/aretw0/latword/pkg/observability"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBody caps the size of a POST /expand body.
const DefaultMaxBody = 32 << 20

// Server serves lattice expansion over HTTP.
type Server struct {
	Metrics *observability.Metrics
	Logger  *slog.Logger
	MaxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records expansions and exposes GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxBody sets the request body limit in bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		s.MaxBody = n
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{Logger: logging.NewNop(), MaxBody: DefaultMaxBody}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/expand", s.Expand)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "latword-http",
		"version": strings.TrimSpace(latword.Version),
	}, s.Logger)
}

// Expand handles the POST /expand request.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	var body pipeline.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", s.Logger)
		return
	}

	var opts []pipeline.Option
	opts = append(opts, pipeline.WithLogger(s.Logger))
	if s.Metrics != nil {
		opts = append(opts, pipeline.WithHooks(s.Metrics.Hooks(pipeline.Hooks{})))
	}

	resp, err := pipeline.ExpandArchive(r.Context(), body, opts...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		s.Logger.Warn("expand request failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, status, err.Error(), s.Logger)
		return
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

func writeError(w http.ResponseWriter, status int, msg string, logger *slog.Logger) {
	writeJSON(w, status, map[string]string{"error": msg}, logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
