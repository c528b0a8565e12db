package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/pathrace"
	"github.com/aretw0/pathrace/internal/config"
	"github.com/aretw0/pathrace/internal/logging"
	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/aretw0/pathrace/pkg/domain"
	"github.com/aretw0/pathrace/pkg/session"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies; obstacle lists of large grids fit.
const maxBodyBytes = 8 << 20

// Server serves comparisons, presets and playback sessions over HTTP.
type Server struct {
	comparator *compare.Comparator
	sessions   *session.Manager
	catalog    *config.Catalog
	streams    *StreamManager
	metrics    http.Handler
	logger     *slog.Logger

	spec     *openapi3.T
	requests *schemaValidator
}

// Option configures the Server.
type Option func(*Server)

// WithSessions enables the /api/sessions routes.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// WithCatalog replaces the built-in preset catalog.
func WithCatalog(c *config.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithStreams shares a StreamManager with the session manager's frame observer.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.streams = sm
	}
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a server around a comparator.
func New(c *compare.Comparator, opts ...Option) (*Server, error) {
	s := &Server{comparator: c, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.comparator == nil {
		s.comparator = compare.New(compare.WithLogger(s.logger))
	}
	if s.catalog == nil {
		catalog, err := config.LoadCatalog()
		if err != nil {
			return nil, err
		}
		s.catalog = catalog
	}
	if s.streams == nil {
		s.streams = NewStreamManager(s.logger)
	}

	spec, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	s.spec = spec
	if s.requests, err = newSchemaValidator(spec, "ComparisonRequest"); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/compare", s.Compare)
		r.Get("/presets", s.ListPresets)
		r.Get("/presets/{name}", s.GetPreset)

		if s.sessions == nil {
			return
		}
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.ListSessions)
			r.Post("/", s.CreateSession)
			r.Get("/{id}", s.GetSession)
			r.Put("/{id}", s.ReplaceSession)
			r.Delete("/{id}", s.DeleteSession)
			r.Get("/{id}/events", s.SubscribeEvents)
			r.Post("/{id}/{action}", s.ControlSession)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Compare handles POST /api/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.comparator.Compare(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// presetJSON is a preset with its walls expanded into obstacles.
type presetJSON struct {
	Description string `json:"description"`
	domain.ComparisonRequest
}

func newPresetJSON(p config.Preset) (presetJSON, error) {
	req, err := p.Request()
	if err != nil {
		return presetJSON{}, err
	}
	if req.Obstacles == nil {
		req.Obstacles = []domain.Coordinate{}
	}
	return presetJSON{Description: p.Description, ComparisonRequest: req}, nil
}

// ListPresets handles GET /api/presets.
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]presetJSON)
	for _, p := range s.catalog.List() {
		pj, err := newPresetJSON(p)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out[p.Name] = pj
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetPreset handles GET /api/presets/{name}.
func (s *Server) GetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pj, err := newPresetJSON(p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pj)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "pathrace-http",
		"version":     strings.TrimSpace(pathrace.Version),
		"api_version": apiVersion,
	})
}

// decodeRequest reads a comparison request, validates its shape against
// the OpenAPI schema and fills in the defaults of missing fields.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (domain.ComparisonRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.ComparisonRequest{}, &domain.InvalidRequestError{Field: "body", Reason: err.Error()}
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.ComparisonRequest{}, &domain.InvalidRequestError{Field: "body", Reason: "invalid JSON: " + err.Error()}
	}
	doc, ok := raw.(map[string]any)
	if !ok || len(doc) == 0 {
		return domain.ComparisonRequest{}, &domain.InvalidRequestError{Field: "body", Reason: "no JSON data provided"}
	}
	if err := s.requests.Validate(doc); err != nil {
		return domain.ComparisonRequest{}, err
	}
	return config.DecodeRequestDefaults(doc)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidGrid), errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, config.ErrUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, &domain.InvalidRequestError{Field: name, Reason: "must be an integer", Value: v}
	}
	return n, true, nil
}
