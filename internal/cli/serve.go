package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tisu/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the rewrite engine over HTTP.

Endpoints:
  GET  /healthz       liveness and build version
  POST /v1/apply      apply rule sets to a grid
  POST /v1/segments   list the rectangles of a grid
  POST /v1/generate   generate a city map

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config().Server
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Addr
			}
			srv := server.New(server.Options{
				Logger:       c.Logger,
				MaxBodyBytes: cfg.MaxBodyBytes,
				ReadTimeout:  cfg.ReadTimeout.Duration,
				WriteTimeout: cfg.WriteTimeout.Duration,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
