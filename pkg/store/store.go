// Package store persists named layout sets.
//
// A layout set bundles everything a dashboard host needs to restore its
// grid: the breakpoint table, the per-breakpoint column counts, and the
// stored layouts. Implementations cover the usual deployment shapes:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store and save a layout set:
//
//	// CLI
//	s, err := store.NewFileStore("")  // Uses ~/.config/gridrack/layouts/
//
//	// Server
//	s, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
//	set := store.NewLayoutSet("dashboard", breakpoints, cols)
//	set.Layouts["lg"] = layout
//	if err := s.Save(ctx, set); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid/responsive"
)

// LayoutSet is a named, persistable bundle of responsive layouts.
type LayoutSet struct {
	ID          string                 `json:"id" bson:"_id"`
	Name        string                 `json:"name" bson:"name"`
	Breakpoints responsive.Breakpoints `json:"breakpoints" bson:"breakpoints"`
	Cols        responsive.Cols        `json:"cols" bson:"cols"`
	Layouts     responsive.Layouts     `json:"layouts" bson:"layouts"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" bson:"updated_at"`
}

// NewLayoutSet creates a layout set with a fresh id and empty layouts.
func NewLayoutSet(name string, breakpoints responsive.Breakpoints, cols responsive.Cols) *LayoutSet {
	now := time.Now().UTC()
	return &LayoutSet{
		ID:          uuid.NewString(),
		Name:        name,
		Breakpoints: breakpoints,
		Cols:        cols,
		Layouts:     responsive.Layouts{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the set's name and every stored layout.
func (s *LayoutSet) Validate() error {
	if err := errors.ValidateLayoutName(s.Name); err != nil {
		return err
	}
	if len(s.Breakpoints) == 0 {
		return errors.New(errors.ErrCodeInvalidBreakpoints, "layout set %q has no breakpoints", s.Name)
	}
	for bp, l := range s.Layouts {
		if _, ok := s.Breakpoints[bp]; !ok {
			return errors.New(errors.ErrCodeInvalidBreakpoints, "layout stored for unknown breakpoint %q", bp)
		}
		if err := l.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout for breakpoint %q", bp)
		}
	}
	return nil
}

// Clone returns a deep copy. Stores hand out clones so callers can mutate
// results without corrupting shared state.
func (s *LayoutSet) Clone() *LayoutSet {
	out := *s
	out.Breakpoints = make(responsive.Breakpoints, len(s.Breakpoints))
	for k, v := range s.Breakpoints {
		out.Breakpoints[k] = v
	}
	out.Cols = make(responsive.Cols, len(s.Cols))
	for k, v := range s.Cols {
		out.Cols[k] = v
	}
	out.Layouts = make(responsive.Layouts, len(s.Layouts))
	for k, v := range s.Layouts {
		out.Layouts[k] = v.Clone()
	}
	return &out
}

// Touch refreshes the update timestamp.
func (s *LayoutSet) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Store is the interface for layout set persistence backends.
type Store interface {
	// Get retrieves a layout set by name.
	// Returns ErrCodeLayoutNotFound if no set with that name exists.
	Get(ctx context.Context, name string) (*LayoutSet, error)

	// Save stores a layout set, replacing any set with the same name.
	// A missing id is assigned before the write.
	Save(ctx context.Context, set *LayoutSet) error

	// Delete removes a layout set by name. Deleting a missing set returns
	// ErrCodeLayoutNotFound.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored layout sets, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// prepare normalizes a set before a write: validates it, assigns an id when
// missing, and refreshes the update timestamp.
func prepare(set *LayoutSet) error {
	if err := set.Validate(); err != nil {
		return err
	}
	if set.ID == "" {
		set.ID = uuid.NewString()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}
	set.Touch()
	return nil
}
