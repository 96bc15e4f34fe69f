package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/seqline"
	"github.com/aretw0/seqline/internal/presentation/graph"
	"github.com/aretw0/seqline/internal/presentation/svg"
	"github.com/aretw0/seqline/pkg/adapters/memory"
	"github.com/aretw0/seqline/pkg/domain"
	"github.com/aretw0/seqline/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MaxScenarioSize bounds the body of a render request.
const MaxScenarioSize = 1 << 20

// Engine parses and renders scenarios. *seqline.Engine satisfies it.
type Engine interface {
	Parse(data []byte) (*domain.Scenario, error)
	Render(ctx context.Context, sc *domain.Scenario) (*domain.Layout, error)
}

// Server serves the render API.
type Server struct {
	Engine   Engine
	Store    ports.LayoutStore
	Streams  *StreamManager
	logger   *slog.Logger
	observer func(time.Duration, error)
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets where saved layouts go. Defaults to an in-memory store.
func WithStore(store ports.LayoutStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithStreams shares a StreamManager, typically one whose Hooks were given to the engine.
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) {
		s.Streams = streams
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderObserver registers a callback receiving the duration and outcome of every render.
func WithRenderObserver(observe func(time.Duration, error)) Option {
	return func(s *Server) {
		s.observer = observe
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Store == nil {
		server.Store = memory.NewStore()
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.GetHealth)
	r.Post("/render", server.Render)
	r.Get("/events", server.SubscribeEvents)
	r.Route("/layouts", func(r chi.Router) {
		r.Get("/", server.ListLayouts)
		r.Get("/{id}", server.GetLayout)
		r.Get("/{id}/svg", server.GetLayoutSVG)
		r.Get("/{id}/mermaid", server.GetLayoutMermaid)
		r.Delete("/{id}", server.DeleteLayout)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(seqline.Version),
	})
}

// Render handles the POST /render request. The body is a scenario document.
// Query parameters: format (json, svg, mermaid) and save (store the layout).
// A saved layout is keyed by the scenario name, so saving a name again replaces the earlier
// layout. Unnamed scenarios, and names that are not a single path segment, get a random id.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "svg" && format != "mermaid" {
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}
	save := false
	if v := r.URL.Query().Get("save"); v != "" {
		var err error
		if save, err = strconv.ParseBool(v); err != nil {
			http.Error(w, fmt.Sprintf("invalid save flag %q", v), http.StatusBadRequest)
			return
		}
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxScenarioSize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusRequestEntityTooLarge)
		s.logger.Warn("Render: invalid request body", "error", err)
		return
	}

	sc, err := s.Engine.Parse(data)
	if err != nil {
		s.fail(w, "Parse", err)
		return
	}

	start := time.Now()
	layout, err := s.Engine.Render(r.Context(), sc)
	if s.observer != nil {
		s.observer(time.Since(start), err)
	}
	if err != nil {
		s.fail(w, "Render", err)
		return
	}

	if save {
		id := layoutID(layout.Name)
		if err := s.Store.Save(r.Context(), id, layout); err != nil {
			s.fail(w, "Save", err)
			return
		}
		w.Header().Set("Location", "/layouts/"+id)
		w.Header().Set("X-Layout-Id", id)
		s.logger.Info("Layout saved", "id", id)
	}

	s.write(w, format, layout)
}

// layoutID returns name when it can be used verbatim as the {id} of a /layouts route.
func layoutID(name string) string {
	if name == "" || name == "." || name == ".." || url.PathEscape(name) != name {
		return uuid.NewString()
	}
	return name
}

// ListLayouts handles the GET /layouts request.
func (s *Server) ListLayouts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "List", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetLayout handles the GET /layouts/{id} request.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	s.serveLayout(w, r, "json")
}

// GetLayoutSVG handles the GET /layouts/{id}/svg request.
func (s *Server) GetLayoutSVG(w http.ResponseWriter, r *http.Request) {
	s.serveLayout(w, r, "svg")
}

// GetLayoutMermaid handles the GET /layouts/{id}/mermaid request.
func (s *Server) GetLayoutMermaid(w http.ResponseWriter, r *http.Request) {
	s.serveLayout(w, r, "mermaid")
}

// DeleteLayout handles the DELETE /layouts/{id} request.
func (s *Server) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.fail(w, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) serveLayout(w http.ResponseWriter, r *http.Request, format string) {
	id := chi.URLParam(r, "id")
	layout, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "Load", err)
		return
	}
	s.write(w, format, layout)
}

func (s *Server) write(w http.ResponseWriter, format string, layout *domain.Layout) {
	switch format {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := svg.Render(w, layout); err != nil {
			s.logger.Error("SVG response write failed", "error", err)
		}
	case "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, graph.GenerateMermaid(layout, nil))
	default:
		writeJSON(w, http.StatusOK, layout)
	}
}

// fail maps an error to its status code.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+" rejected", "error", err, "status", status)
	}
	writeJSON(w, status, map[string]any{"error": err.Error(), "problems": problemsOf(err)})
}

func statusOf(err error) int {
	var verr *seqline.ValidationError
	var merr *seqline.MessageError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &merr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrLayoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func problemsOf(err error) []string {
	var verr *seqline.ValidationError
	if errors.As(err, &verr) {
		return verr.Problems
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
