package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lexgraph/internal/server"
	"github.com/matzehuels/lexgraph/pkg/observability"
)

// metricsNamespace prefixes every exported metric.
const metricsNamespace = "lexgraph"

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		dbf       databaseFlags
		addr      string
		noMetrics bool
		noExpand  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve exploration sessions over HTTP and websockets",
		Long: `Serve exploration sessions over HTTP and websockets.

Clients create a session from a seed with POST /api/sessions, expand nodes
with POST /api/sessions/{id}/nodes/{sense}/expand or by sending
{"type":"activate","id":"..."} on GET /api/sessions/{id}/ws, and receive
every expansion as node and edge events on the websocket.

Prometheus metrics are exposed at /metrics unless --no-metrics is set.`,
		Example: `  lexgraph serve --db wordnet.toml --addr :8080
  lexgraph serve --driver mongo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &dbf, addr, !noMetrics, noExpand)
		},
	}

	dbf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	cmd.Flags().BoolVar(&noExpand, "no-expand-seed", false, "do not expand the seed when a session starts")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, dbf *databaseFlags, addr string, metrics, noExpand bool) error {
	logger := loggerFromContext(ctx)

	cfg, be, err := c.openFromFlags(ctx, dbf)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.Close(); err != nil {
			logger.Warn("close database", "err", err)
		}
	}()

	if addr == "" {
		addr = cfg.Server.Addr
	}
	opts := c.exploreOptions(cfg.Layout)
	if noExpand {
		opts.ExpandSeed = false
	}

	srvCfg := server.Config{
		Explore:         opts,
		Logger:          logger,
		ShutdownTimeout: 10 * time.Second,
	}
	if metrics {
		p := observability.NewPrometheus(metricsNamespace)
		observability.SetExploreHooks(p)
		observability.SetServerHooks(p)
		defer observability.Reset()
		srvCfg.Metrics = promhttp.HandlerFor(p.Registry(), promhttp.HandlerOpts{})
	}

	logger.Debug("Serving", "driver", cfg.Database.Driver, "metrics", metrics)
	printInfo("Listening on %s", addr)
	err = server.New(be.DB, srvCfg).ListenAndServe(ctx, addr)
	if err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
