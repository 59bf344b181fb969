package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/compact"
	"github.com/gridrack/gridrack/pkg/grid/engine"
	"github.com/gridrack/gridrack/pkg/pipeline"
	"github.com/gridrack/gridrack/pkg/store"
)

// =============================================================================
// Layout Operations
// =============================================================================

// layoutRequest is the shared request shape for stateless layout operations.
type layoutRequest struct {
	Layout       grid.Layout      `json:"layout"`
	Cols         int              `json:"cols,omitempty"`
	CompactType  grid.CompactType `json:"compact_type,omitempty"`
	AllowOverlap bool             `json:"allow_overlap,omitempty"`

	// Move/resize fields
	ID               string `json:"id,omitempty"`
	X                *int   `json:"x,omitempty"`
	Y                *int   `json:"y,omitempty"`
	W                int    `json:"w,omitempty"`
	H                int    `json:"h,omitempty"`
	PreventCollision bool   `json:"prevent_collision,omitempty"`
	UserAction       bool   `json:"user_action,omitempty"`

	// Compact skips re-compaction after a move or resize when false is
	// explicitly requested; nil means compact.
	Compact *bool `json:"compact,omitempty"`
}

// layoutResponse carries the resulting layout.
type layoutResponse struct {
	Layout grid.Layout `json:"layout"`
}

func (req *layoutRequest) validate() error {
	if req.Layout == nil {
		return errors.New(errors.ErrCodeInvalidInput, "layout is required")
	}
	if err := req.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout")
	}
	if req.Cols == 0 {
		req.Cols = pipeline.DefaultCols
	}
	if req.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cols must be positive, got %d", req.Cols)
	}
	if req.CompactType == "" {
		req.CompactType = pipeline.DefaultCompactType
	}
	if !req.CompactType.Valid() {
		return errors.New(errors.ErrCodeInvalidCompactType, "invalid compact type %q", req.CompactType)
	}
	return nil
}

func (req *layoutRequest) engineOpts() engine.Options {
	return engine.Options{
		Cols:             req.Cols,
		CompactType:      req.CompactType,
		PreventCollision: req.PreventCollision,
		AllowOverlap:     req.AllowOverlap,
	}
}

// recompact runs the post-operation compaction unless the request opted out.
func (req *layoutRequest) recompact(l grid.Layout) grid.Layout {
	if req.Compact != nil && !*req.Compact {
		return l
	}
	return compact.Compact(l, req.CompactType, req.Cols, req.AllowOverlap)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	corrected := grid.CorrectBounds(req.Layout, grid.Bounds{Cols: req.Cols})
	out := compact.Compact(corrected, req.CompactType, req.Cols, req.AllowOverlap)
	writeJSON(w, http.StatusOK, layoutResponse{Layout: out})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}
	if req.ID == "" || req.X == nil || req.Y == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "id, x, and y are required"))
		return
	}
	if _, ok := req.Layout.Item(req.ID); !ok {
		writeError(w, errors.New(errors.ErrCodeItemNotFound, "no item with id %q", req.ID))
		return
	}

	moved := engine.Move(req.Layout, req.ID, *req.X, *req.Y, req.UserAction, req.engineOpts())
	writeJSON(w, http.StatusOK, layoutResponse{Layout: req.recompact(moved)})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}
	if req.ID == "" || req.W < 1 || req.H < 1 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "id and positive w, h are required"))
		return
	}
	if _, ok := req.Layout.Item(req.ID); !ok {
		writeError(w, errors.New(errors.ErrCodeItemNotFound, "no item with id %q", req.ID))
		return
	}

	resized := engine.Resize(req.Layout, req.ID, engine.ResizeRequest{
		W: req.W, H: req.H, X: req.X, Y: req.Y,
	}, req.engineOpts())
	writeJSON(w, http.StatusOK, layoutResponse{Layout: req.recompact(resized)})
}

// deriveRequest resolves a breakpoint layout for a stored set.
type deriveRequest struct {
	Name         string           `json:"name"`
	Breakpoint   string           `json:"breakpoint,omitempty"`
	Width        float64          `json:"width,omitempty"`
	CompactType  grid.CompactType `json:"compact_type,omitempty"`
	AllowOverlap bool             `json:"allow_overlap,omitempty"`
}

// deriveResponse carries the resolved layout and its grid parameters.
type deriveResponse struct {
	Layout     grid.Layout `json:"layout"`
	Breakpoint string      `json:"breakpoint"`
	Cols       int         `json:"cols"`
}

func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	var req deriveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Name:         req.Name,
		Breakpoint:   req.Breakpoint,
		Width:        req.Width,
		CompactType:  req.CompactType,
		AllowOverlap: req.AllowOverlap,
		Formats:      []string{pipeline.FormatJSON},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deriveResponse{
		Layout:     result.Layout,
		Breakpoint: string(result.Breakpoint),
		Cols:       result.Cols,
	})
}

// =============================================================================
// Layout Set CRUD
// =============================================================================

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeUnsupported, "no store configured"))
		return false
	}
	return true
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sets": names})
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	set, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handlePutSet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var set store.LayoutSet
	if !decodeBody(w, r, &set) {
		return
	}
	set.Name = chi.URLParam(r, "name")

	if err := s.store.Save(r.Context(), &set); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderSet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatPNG
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Name:       chi.URLParam(r, "name"),
		Breakpoint: r.URL.Query().Get("breakpoint"),
		Formats:    []string{format},
		ShowGrid:   true,
		Labels:     true,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}
