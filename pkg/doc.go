// Package pkg provides the core libraries for GridRack dashboard layout.
//
// # Overview
//
// GridRack arranges dashboard items on a column grid: it resolves collisions,
// compacts layouts, derives responsive breakpoint variants, and renders
// previews. The pkg directory is organized into four main areas:
//
//  1. [grid] - Domain logic (collision, compaction, move/resize, breakpoints)
//  2. [infra] - Infrastructure (caching, layout set stores, observability)
//  3. [pipeline] - Orchestration (load → normalize → derive → render)
//  4. [api] - The HTTP boundary over the pipeline
//
// # Architecture
//
// The typical data flow through GridRack:
//
//	Layout JSON / Stored Set
//	         ↓
//	    [grid] package (bounds correction, compaction, displacement)
//	         ↓
//	    [grid/responsive] package (breakpoint resolution + scaling)
//	         ↓
//	    [render] package (PNG previews) / [grid] JSON
//	         ↓
//	    CLI output or HTTP response
//
// # Quick Start
//
// Compact a layout and render a preview:
//
//	import (
//	    "context"
//	    "github.com/gridrack/gridrack/pkg/grid"
//	    "github.com/gridrack/gridrack/pkg/pipeline"
//	)
//
//	layout := grid.Layout{
//	    grid.NewItem("chart", 0, 0, 6, 4),
//	    grid.NewItem("table", 6, 0, 6, 4),
//	}
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Layout:  layout,
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	preview := result.Artifacts[pipeline.FormatPNG]
//
// # Main Packages
//
// ## Core Domain Logic
//
// [grid] - Layout items, half-open collision detection, bounds correction,
// sorting, and JSON serialization. The Layout type is copy-on-write: every
// operation returns a new slice and leaves its input untouched.
//
// [grid/compact] - The unit-by-unit compaction walk that pulls items toward
// the origin without tunneling through obstacles.
//
// [grid/engine] - Move and resize with displacement: colliding neighbors are
// pushed out of the way recursively, statics stay put.
//
// [grid/responsive] - Breakpoint tables, viewport resolution, and layout
// derivation across column counts.
//
// [grid/constraint] - The normalization pipeline for fractional positions:
// snapping, size clamps, and aspect ratio locks.
//
// [grid/position] - Grid unit to pixel conversion and back.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching keyed by layout hashes. FileCache for
// the CLI, RedisCache for servers, NullCache for tests.
//
// [store] - Layout set persistence. FileStore for the CLI (one JSON file per
// set), MongoStore for servers, MemoryStore for testing.
//
// [observability] - Hook points invoked on engine, cache, and store events.
//
// ## Orchestration
//
// [pipeline] - The staged runner shared by CLI and API. Each stage caches its
// result and reports hits through Result.CacheInfo.
//
// [api] - The chi HTTP server exposing every layout operation as JSON
// endpoints plus layout set CRUD and rendering.
//
// [render] - PNG previews drawn with fogleman/gg.
package pkg
