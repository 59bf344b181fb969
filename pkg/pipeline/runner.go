package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridrack/gridrack/pkg/cache"
	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/compact"
	"github.com/gridrack/gridrack/pkg/grid/position"
	"github.com/gridrack/gridrack/pkg/grid/responsive"
	"github.com/gridrack/gridrack/pkg/observability"
	"github.com/gridrack/gridrack/pkg/render"
	"github.com/gridrack/gridrack/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, store, and logger - it
// doesn't hold pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and store.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// The store may be nil when only inline layouts are processed.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Execute runs the complete load → normalize → derive → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
		Cols:      opts.Cols,
	}

	if opts.Name != "" {
		// Stage 1: Load
		loadStart := time.Now()
		set, err := r.Load(ctx, opts.Name)
		if err != nil {
			return nil, err
		}
		result.Stats.LoadTime = time.Since(loadStart)

		// Stage 2+3: Derive (includes normalization of the derived layout)
		deriveStart := time.Now()
		layout, bp, cols, deriveHit, err := r.DeriveWithCacheInfo(ctx, set, opts)
		if err != nil {
			return nil, err
		}
		result.Layout = layout
		result.Breakpoint = bp
		result.Cols = cols
		result.Stats.DeriveTime = time.Since(deriveStart)
		result.CacheInfo.DeriveHit = deriveHit

		r.Logger.Info("derived layout",
			"set", opts.Name,
			"breakpoint", bp,
			"cols", cols,
			"items", len(layout))
	} else {
		// Stage 2: Normalize the inline layout
		normStart := time.Now()
		layout, normHit, err := r.NormalizeWithCacheInfo(ctx, opts.Layout, opts)
		if err != nil {
			return nil, err
		}
		result.Layout = layout
		result.Stats.NormalizeTime = time.Since(normStart)
		result.CacheInfo.NormalizeHit = normHit

		r.Logger.Info("normalized layout",
			"items", len(layout),
			"cols", opts.Cols,
			"duration", result.Stats.NormalizeTime)
	}

	result.Stats.ItemCount = len(result.Layout)
	if data, err := grid.Marshal(result.Layout); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, result.Cols, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load fetches a layout set from the store.
func (r *Runner) Load(ctx context.Context, name string) (*store.LayoutSet, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no store configured for named layout sets")
	}
	return r.Store.Get(ctx, name)
}

// NormalizeWithCacheInfo corrects bounds and compacts a layout with caching
// and returns cache hit info.
func (r *Runner) NormalizeWithCacheInfo(ctx context.Context, l grid.Layout, opts Options) (grid.Layout, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	data, err := grid.Marshal(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidLayout, err, "serialize layout for cache key")
	}
	cacheKey := r.Keyer.NormalizeKey(cache.Hash(data), opts.NormalizeKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := grid.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "normalize")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "normalize")
	}

	start := time.Now()
	corrected := grid.CorrectBounds(l, grid.Bounds{Cols: opts.Cols})
	out := compact.Compact(corrected, opts.CompactType, opts.Cols, opts.AllowOverlap)
	observability.Engine().OnCompact(ctx, string(opts.CompactType), len(out), time.Since(start))

	if data, err := grid.Marshal(out); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "normalize", len(data))
		}
	}
	return out, false, nil
}

// Normalize is a convenience wrapper that discards the cache hit info.
func (r *Runner) Normalize(ctx context.Context, l grid.Layout, opts Options) (grid.Layout, error) {
	out, _, err := r.NormalizeWithCacheInfo(ctx, l, opts)
	return out, err
}

// DeriveWithCacheInfo resolves the target breakpoint of a layout set and
// returns its layout, deriving one by scaling when none is stored.
func (r *Runner) DeriveWithCacheInfo(ctx context.Context, set *store.LayoutSet, opts Options) (grid.Layout, responsive.Breakpoint, int, bool, error) {
	r.applyLogger(&opts)

	bp, err := r.resolveBreakpoint(set, opts)
	if err != nil {
		return nil, "", 0, false, err
	}
	cols, err := responsive.ColsFor(set.Cols, bp)
	if err != nil {
		return nil, "", 0, false, err
	}
	prev, prevCols, err := sourceBreakpoint(set, bp)
	if err != nil {
		return nil, "", 0, false, err
	}

	source := set.Layouts[prev]
	data, err := grid.Marshal(source)
	if err != nil {
		return nil, "", 0, false, errors.Wrap(errors.ErrCodeInvalidLayout, err, "serialize layout for cache key")
	}
	cacheKey := r.Keyer.DeriveKey(cache.Hash(data), opts.DeriveKeyOpts(prevCols, cols))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := grid.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "derive")
				return cached, bp, cols, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "derive")
	}

	start := time.Now()
	layout := responsive.FindOrGenerate(set.Layouts, bp, prev, cols, prevCols, opts.CompactType, opts.AllowOverlap)
	observability.Engine().OnDerive(ctx, string(prev), string(bp), len(layout), time.Since(start))

	if data, err := grid.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDerive); err == nil {
			observability.Cache().OnCacheSet(ctx, "derive", len(data))
		}
	}
	return layout, bp, cols, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l grid.Layout, cols int, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := grid.Marshal(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidLayout, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, cols))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(l, cols, format, opts)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, cols))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l grid.Layout, cols int, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, cols, opts)
	return artifacts, err
}

// renderFormat produces a single artifact.
func (r *Runner) renderFormat(l grid.Layout, cols int, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return grid.Marshal(l)
	case FormatPNG:
		return render.PNG(l, render.Options{
			Calc: position.Calc{
				Cols:           cols,
				ContainerWidth: opts.ContainerWidth,
				RowHeight:      opts.RowHeight,
				MarginX:        opts.MarginX,
				MarginY:        opts.MarginY,
				PaddingX:       opts.PaddingX,
			},
			ShowGrid: opts.ShowGrid,
			Labels:   opts.Labels,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid format: %q", format)
	}
}

// resolveBreakpoint picks the target breakpoint from the options.
func (r *Runner) resolveBreakpoint(set *store.LayoutSet, opts Options) (responsive.Breakpoint, error) {
	if opts.Breakpoint != "" {
		bp := responsive.Breakpoint(opts.Breakpoint)
		if _, ok := set.Breakpoints[bp]; !ok {
			return "", errors.New(errors.ErrCodeInvalidBreakpoints, "set %q has no breakpoint %q", set.Name, bp)
		}
		return bp, nil
	}
	if opts.Width > 0 {
		return responsive.FromWidth(set.Breakpoints, opts.Width)
	}
	// Widest breakpoint by default.
	sorted := set.Breakpoints.Sorted()
	if len(sorted) == 0 {
		return "", errors.New(errors.ErrCodeInvalidBreakpoints, "set %q has no breakpoints", set.Name)
	}
	return sorted[len(sorted)-1], nil
}

// sourceBreakpoint picks the breakpoint whose stored layout seeds the
// derivation: the target itself when stored, otherwise the widest stored
// breakpoint.
func sourceBreakpoint(set *store.LayoutSet, target responsive.Breakpoint) (responsive.Breakpoint, int, error) {
	if _, ok := set.Layouts[target]; ok {
		cols, err := responsive.ColsFor(set.Cols, target)
		return target, cols, err
	}
	sorted := set.Breakpoints.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		if _, ok := set.Layouts[sorted[i]]; ok {
			cols, err := responsive.ColsFor(set.Cols, sorted[i])
			return sorted[i], cols, err
		}
	}
	return "", 0, errors.New(errors.ErrCodeLayoutNotFound, "set %q has no stored layouts", set.Name)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
