package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/server"
)

// serveCommand creates the serve command for exposing a graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags buildFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [graph file]",
		Short: "Serve a graph over a read-only HTTP API",
		Long: `Serve a graph over a read-only HTTP API.

The graph is loaded once and answered from memory:

  GET /graph                  counts and flags
  GET /vertices/{id}          degrees of one vertex
  GET /vertices/{id}/out      outgoing neighbors (?offset=&limit=)
  GET /vertices/{id}/in       incoming neighbors (needs --in-edges)
  GET /edges/{offset}         endpoints of one stored edge
  GET /rank                   top vertices by PageRank (?k=)

The server stops gracefully on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, res, err := c.load(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("addr") {
				addr = c.config().Server.Addr
			}
			out := newPrinter(cmd.OutOrStdout())
			out.success("Serving %s", args[0])
			out.counts(res.Graph, res.CacheHit)
			out.detail("http://%s/graph", addr)

			return server.New(res, runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	flags.register(cmd)

	return cmd
}
