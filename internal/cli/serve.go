package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/api"
	"github.com/gridrack/gridrack/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address, overrides the config file
	noCache bool   // disable the cache
}

// serveCommand creates the serve command. It runs the HTTP API until the
// process receives an interrupt, then shuts down gracefully.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout engine as an HTTP server",
		Long: `Serve exposes every layout operation over HTTP: normalize, move, resize,
derive, layout set CRUD, and rendering. The store and cache backends come
from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := opts.addr
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			ca, err := c.newCache(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			st, err := c.newStore(cmd.Context())
			if err != nil {
				ca.Close()
				return err
			}
			runner := pipeline.NewRunner(ca, nil, st, c.Logger)
			defer runner.Close()

			server := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(runner, st, c.Logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")

	return cmd
}
