// Package cli implements the gridrack command-line interface.
//
// This package provides commands for normalizing dashboard layouts, deriving
// breakpoint variants, rendering previews, managing stored layout sets, and
// serving the layout engine over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - normalize: Correct bounds and compact a layout file
//   - derive: Resolve a breakpoint layout from a stored set
//   - render: Generate a PNG preview of a layout
//   - store: Manage stored layout sets
//   - edit: Interactively rearrange a stored layout set
//   - serve: Run the HTTP API server
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/gridrack/gridrack/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/buildinfo"
	"github.com/gridrack/gridrack/pkg/cache"
	"github.com/gridrack/gridrack/pkg/pipeline"
	"github.com/gridrack/gridrack/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridrack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "GridRack arranges dashboard layouts on a column grid",
		Long:         `GridRack is a layout engine for dashboard grids. It compacts and validates layouts, derives variants for responsive breakpoints, renders previews, and serves the whole engine over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)

			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/gridrack/config.toml)")

	// Register all subcommands
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.deriveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned runner owns
// the cache and store and should be closed when the command finishes.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ca, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	st, err := c.newStore(ctx)
	if err != nil {
		ca.Close()
		return nil, err
	}
	return pipeline.NewRunner(ca, nil, st, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store.Backend {
	case storeBackendMemory:
		return store.NewMemoryStore(), nil
	case storeBackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      c.Config.Store.MongoURI,
			Database: c.Config.Store.MongoDatabase,
		})
	default:
		return store.NewFileStore(c.Config.Store.Dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gridrack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

// applyConfigDefaults fills zero-valued grid options from the config file.
// Flags win over the file, the file over pipeline defaults.
func (c *CLI) applyConfigDefaults(opts *pipeline.Options) {
	if c.Config == nil {
		return
	}
	if opts.Cols == 0 {
		opts.Cols = c.Config.Grid.Cols
	}
	if opts.ContainerWidth == 0 {
		opts.ContainerWidth = c.Config.Grid.ContainerWidth
	}
	if opts.RowHeight == 0 {
		opts.RowHeight = c.Config.Grid.RowHeight
	}
	if opts.MarginX == 0 {
		opts.MarginX = c.Config.Grid.Margin
	}
	if opts.MarginY == 0 {
		opts.MarginY = c.Config.Grid.Margin
	}
}
