// Package pipeline provides the core layout pipeline for GridRack.
//
// This package implements the complete load → normalize → derive → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Fetch a layout set from the store, or accept an inline layout
//  2. Normalize: Correct bounds and compact the layout
//  3. Derive: Resolve the target breakpoint and scale the layout to it
//  4. Render: Generate output in various formats (PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	opts := pipeline.Options{
//	    Name:    "dashboard",
//	    Width:   800,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	preview := result.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridrack/gridrack/pkg/cache"
	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/responsive"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCols is the column count used when the caller supplies none.
	DefaultCols = 12

	// DefaultContainerWidth is the default render width in pixels.
	DefaultContainerWidth = 800.0

	// DefaultRowHeight is the default row height in pixels.
	DefaultRowHeight = 40.0

	// DefaultMargin is the default gap between grid units in pixels.
	DefaultMargin = 8.0
)

// DefaultCompactType is the default compaction strategy.
const DefaultCompactType = grid.CompactVertical

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Name selects a stored layout set; Layout supplies an
	// inline layout instead.
	Name   string      `json:"name,omitempty"`
	Layout grid.Layout `json:"layout,omitempty"`

	// Grid options
	Cols         int              `json:"cols,omitempty"`
	CompactType  grid.CompactType `json:"compact_type,omitempty"`
	AllowOverlap bool             `json:"allow_overlap,omitempty"`

	// Responsive options. Breakpoint targets an explicit breakpoint; Width
	// resolves one from the viewport width when Breakpoint is empty. Both
	// apply only to stored layout sets.
	Breakpoint string  `json:"breakpoint,omitempty"`
	Width      float64 `json:"width,omitempty"`

	// Render options
	ContainerWidth float64  `json:"container_width,omitempty"`
	RowHeight      float64  `json:"row_height,omitempty"`
	MarginX        float64  `json:"margin_x,omitempty"`
	MarginY        float64  `json:"margin_y,omitempty"`
	PaddingX       float64  `json:"padding_x,omitempty"`
	Formats        []string `json:"formats,omitempty"`
	ShowGrid       bool     `json:"show_grid,omitempty"`
	Labels         bool     `json:"labels,omitempty"`

	// Refresh bypasses the cache for every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the final normalized (and possibly derived) layout.
	Layout grid.Layout

	// LayoutHash is the content hash of the final layout.
	LayoutHash string

	// Breakpoint is the resolved breakpoint, empty for inline layouts.
	Breakpoint responsive.Breakpoint

	// Cols is the column count the final layout obeys.
	Cols int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount     int
	LoadTime      time.Duration
	NormalizeTime time.Duration
	DeriveTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NormalizeHit bool // Whether the normalize result came from cache
	DeriveHit    bool // Whether the derive result came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load and normalize stages.
func (o *Options) ValidateForLoad() error {
	if o.Name == "" && o.Layout == nil {
		return errors.New(errors.ErrCodeInvalidInput, "name or layout is required")
	}
	if o.Name != "" {
		if err := errors.ValidateLayoutName(o.Name); err != nil {
			return err
		}
	}
	if o.Layout != nil {
		if err := o.Layout.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLayout, err, "inline layout")
		}
	}

	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cols must be positive, got %d", o.Cols)
	}
	if o.CompactType == "" {
		o.CompactType = DefaultCompactType
	}
	if !o.CompactType.Valid() {
		return errors.New(errors.ErrCodeInvalidCompactType, "invalid compact type %q", o.CompactType)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.ContainerWidth == 0 {
		o.ContainerWidth = DefaultContainerWidth
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.MarginX == 0 {
		o.MarginX = DefaultMargin
	}
	if o.MarginY == 0 {
		o.MarginY = DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// NormalizeKeyOpts returns cache key options for the normalize stage.
func (o *Options) NormalizeKeyOpts() cache.NormalizeKeyOpts {
	return cache.NormalizeKeyOpts{
		Cols:         o.Cols,
		CompactType:  string(o.CompactType),
		AllowOverlap: o.AllowOverlap,
	}
}

// DeriveKeyOpts returns cache key options for the derive stage.
func (o *Options) DeriveKeyOpts(fromCols, toCols int) cache.DeriveKeyOpts {
	return cache.DeriveKeyOpts{
		FromCols:     fromCols,
		ToCols:       toCols,
		CompactType:  string(o.CompactType),
		AllowOverlap: o.AllowOverlap,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string, cols int) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:         format,
		Cols:           cols,
		ContainerWidth: o.ContainerWidth,
		RowHeight:      o.RowHeight,
		MarginX:        o.MarginX,
		MarginY:        o.MarginY,
		PaddingX:       o.PaddingX,
	}
}
