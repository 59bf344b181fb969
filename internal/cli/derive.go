package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/pipeline"
)

// deriveOpts holds the command-line flags for the derive command.
type deriveOpts struct {
	breakpoint   string  // explicit target breakpoint name
	width        float64 // viewport width used to resolve a breakpoint
	compactType  string  // compaction strategy applied after scaling
	allowOverlap bool    // permit overlapping items
	output       string  // output file path
	formats      string  // comma-separated output formats
	noCache      bool    // disable the cache for this run
	refresh      bool    // recompute even when a cached result exists
}

// deriveCommand creates the derive command. It resolves a breakpoint layout
// for a stored set, generating one from the widest stored breakpoint when no
// layout exists for the target.
func (c *CLI) deriveCommand() *cobra.Command {
	var opts deriveOpts

	cmd := &cobra.Command{
		Use:   "derive <set>",
		Short: "Resolve a breakpoint layout from a stored set",
		Long: `Derive resolves the layout a stored set should show at a breakpoint. The
target is picked with --breakpoint, resolved from --width, or defaults to the
widest configured breakpoint. Missing layouts are scaled from the widest
stored breakpoint and compacted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			pipeOpts := pipeline.Options{
				Name:         args[0],
				Breakpoint:   opts.breakpoint,
				Width:        opts.width,
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
			prog.done(fmt.Sprintf("Derived %s at %d columns", result.Breakpoint, result.Cols))

			base := opts.output
			if base == "" {
				base = fmt.Sprintf("%s_%s", args[0], result.Breakpoint)
			}
			if err := writeArtifacts(result, basePath(base, base)); err != nil {
				return err
			}

			printKeyValue("breakpoint", string(result.Breakpoint))
			printKeyValue("columns", fmt.Sprintf("%d", result.Cols))
			printStats(result.Stats.ItemCount, result.CacheInfo.DeriveHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.breakpoint, "breakpoint", "b", "", "target breakpoint name")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "viewport width to resolve a breakpoint")
	cmd.Flags().StringVar(&opts.compactType, "compact", "", "compaction: vertical (default), horizontal, none")
	cmd.Flags().BoolVar(&opts.allowOverlap, "allow-overlap", false, "permit overlapping items")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), png (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}
