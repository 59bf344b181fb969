// Package api exposes the layout engine over HTTP.
//
// The API is a thin JSON boundary over the pipeline and the engine: every
// operation the CLI offers is reachable as an endpoint, so browser hosts
// can delegate layout math to the server instead of reimplementing it.
//
// # Routes
//
//	POST   /v1/layouts/normalize   Correct bounds and compact a layout
//	POST   /v1/layouts/move        Move an item, displacing neighbors
//	POST   /v1/layouts/resize      Resize an item, displacing neighbors
//	POST   /v1/layouts/derive      Resolve a breakpoint for a stored set
//	GET    /v1/sets                List stored layout sets
//	GET    /v1/sets/{name}         Fetch a stored layout set
//	PUT    /v1/sets/{name}         Create or replace a layout set
//	DELETE /v1/sets/{name}         Delete a layout set
//	GET    /v1/sets/{name}/render  Render a set's layout (png or json)
//	GET    /healthz                Liveness probe
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/pipeline"
	"github.com/gridrack/gridrack/pkg/store"
)

// Server wires the pipeline runner and store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server. The store may be nil, which disables the
// /v1/sets routes with 501 responses.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/layouts", func(r chi.Router) {
			r.Post("/normalize", s.handleNormalize)
			r.Post("/move", s.handleMove)
			r.Post("/resize", s.handleResize)
			r.Post("/derive", s.handleDerive)
		})
		r.Route("/sets", func(r chi.Router) {
			r.Get("/", s.handleListSets)
			r.Get("/{name}", s.handleGetSet)
			r.Put("/{name}", s.handlePutSet)
			r.Delete("/{name}", s.handleDeleteSet)
			r.Get("/{name}/render", s.handleRenderSet)
		})
	})

	return r
}

// logRequests logs each request with method, path, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidItem, errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidCompactType, errors.ErrCodeInvalidBreakpoints, errors.ErrCodeInvalidName:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeItemNotFound, errors.ErrCodeLayoutNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	case errors.ErrCodeStore:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}
