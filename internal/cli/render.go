package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	set            string  // stored set name (instead of a layout file)
	breakpoint     string  // breakpoint to render when --set is used
	output         string  // output file path
	cols           int     // column count for inline layouts
	containerWidth float64 // preview width in pixels
	rowHeight      float64 // row height in pixels
	margin         float64 // gap between grid units in pixels
	showGrid       bool    // draw the cell raster behind the items
	labels         bool    // draw item ids inside the blocks
	noCache        bool    // disable the cache for this run
	refresh        bool    // recompute even when a cached result exists
}

// renderCommand creates the render command for generating PNG previews.
//
// Default settings:
//   - width: 800px, row height: 40px, margin: 8px
//   - grid raster and item labels enabled
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		showGrid: true,
		labels:   true,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a layout to a PNG preview",
		Long: `Render draws a layout as a PNG image with one block per item. The input
is either a layout JSON file or a stored set selected with --set, in which
case --breakpoint picks the variant to draw.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeOpts := pipeline.Options{
				Cols:           opts.cols,
				Breakpoint:     opts.breakpoint,
				ContainerWidth: opts.containerWidth,
				RowHeight:      opts.rowHeight,
				MarginX:        opts.margin,
				MarginY:        opts.margin,
				Formats:        []string{pipeline.FormatPNG},
				ShowGrid:       opts.showGrid,
				Labels:         opts.labels,
				Refresh:        opts.refresh,
				Logger:         c.Logger,
			}
			c.applyConfigDefaults(&pipeOpts)

			input := opts.set
			switch {
			case opts.set != "":
				if len(args) > 0 {
					return fmt.Errorf("cannot combine --set with a layout file")
				}
				pipeOpts.Name = opts.set
			case len(args) == 1:
				layout, err := readLayout(args[0])
				if err != nil {
					return err
				}
				pipeOpts.Layout = layout
				input = args[0]
			default:
				return fmt.Errorf("a layout file or --set is required")
			}

			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinnerWithContext(cmd.Context(), "Rendering layout")
			spin.Start()
			result, err := runner.Execute(cmd.Context(), pipeOpts)
			if err != nil {
				spin.StopWithError(err.Error())
				if spin.Cancelled() {
					return cmd.Context().Err()
				}
				return err
			}

			path := opts.output
			if path == "" {
				path = basePath("", input) + "." + pipeline.FormatPNG
			}
			if err := os.WriteFile(path, result.Artifacts[pipeline.FormatPNG], 0o644); err != nil {
				spin.StopWithError(err.Error())
				return fmt.Errorf("write %s: %w", path, err)
			}
			spin.StopWithSuccess(fmt.Sprintf("Rendered %d items", result.Stats.ItemCount))

			printFile(path)
			printStats(result.Stats.ItemCount, result.CacheInfo.RenderHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.set, "set", "s", "", "render a stored set instead of a file")
	cmd.Flags().StringVarP(&opts.breakpoint, "breakpoint", "b", "", "breakpoint to render (with --set)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "grid column count (default 12)")
	cmd.Flags().Float64Var(&opts.containerWidth, "width", 0, "preview width in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.rowHeight, "row-height", 0, "row height in pixels (default 40)")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "gap between grid units in pixels (default 8)")
	cmd.Flags().BoolVar(&opts.showGrid, "grid", opts.showGrid, "draw the cell raster")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw item ids inside the blocks")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}
