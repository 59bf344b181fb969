package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/pipeline"
)

// normalizeOpts holds the command-line flags for the normalize command.
type normalizeOpts struct {
	output       string // output file path (or base path for multiple formats)
	cols         int    // column count of the grid
	compactType  string // compaction strategy: vertical, horizontal, none
	allowOverlap bool   // permit overlapping items
	formats      string // comma-separated output formats
	noCache      bool   // disable the cache for this run
	refresh      bool   // recompute even when a cached result exists
}

// normalizeCommand creates the normalize command. It reads a layout JSON
// file, corrects out-of-bounds items, compacts the result, and writes the
// requested formats.
func (c *CLI) normalizeCommand() *cobra.Command {
	var opts normalizeOpts

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Correct bounds and compact a layout file",
		Long: `Normalize reads a layout from a JSON file (or stdin when the file is "-"),
clamps every item into the grid, resolves overlaps by compaction, and writes
the result. Use --format png to also render a preview image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := readLayout(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			pipeOpts := pipeline.Options{
				Layout:       layout,
				Cols:         opts.cols,
				CompactType:  grid.CompactType(opts.compactType),
				AllowOverlap: opts.allowOverlap,
				Formats:      parseFormats(opts.formats),
				Refresh:      opts.refresh,
				Logger:       c.Logger,
			}
			c.applyConfigDefaults(&pipeOpts)

			prog := newProgress(loggerFromContext(cmd.Context()))
			result, err := runner.Execute(cmd.Context(), pipeOpts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Normalized %d items", result.Stats.ItemCount))

			if err := writeArtifacts(result, basePath(opts.output, args[0])); err != nil {
				return err
			}
			printStats(result.Stats.ItemCount, result.CacheInfo.NormalizeHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "grid column count (default 12)")
	cmd.Flags().StringVar(&opts.compactType, "compact", "", "compaction: vertical (default), horizontal, none")
	cmd.Flags().BoolVar(&opts.allowOverlap, "allow-overlap", false, "permit overlapping items")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), png (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// readLayout loads a layout from a JSON file, or from stdin when path is "-".
func readLayout(path string) (grid.Layout, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	layout, err := grid.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return layout, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped too so per-format
// suffixes can be appended.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "layout"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes every rendered artifact next to base, one file per
// format.
func writeArtifacts(result *pipeline.Result, base string) error {
	for format, data := range result.Artifacts {
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
