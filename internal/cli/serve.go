package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fpgroups/internal/metrics"
	"github.com/matzehuels/fpgroups/internal/server"
	"github.com/matzehuels/fpgroups/pkg/store"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheCfg cacheOpts
		mongoURI string
		mongoDB  string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over HTTP",
		Long: `Serve analyses over HTTP.

Analyses are posted as JSON to /v1/cosets, /v1/subgroups, /v1/invariants
and /v1/stabilizer. Every result is stored as a report, kept in MongoDB
when --mongo is given and in memory otherwise. Prometheus metrics are
served on /metrics.`,
		Example: `  fpgroups serve --addr :8080 --cache redis --redis localhost:6379
  fpgroups serve --mongo mongodb://localhost:27017 --cache badger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(cmd, cacheCfg)
			if err != nil {
				return err
			}

			if mongoURI == "" {
				printWarning(cmd.ErrOrStderr(), "Reports are kept in memory; pass --mongo to persist them")
			}
			st, err := c.openStore(ctx, mongoURI, mongoDB)
			if err != nil {
				runner.Close()
				return err
			}

			m := metrics.New()
			m.Install()

			srv := server.New(server.Config{
				Runner:         runner,
				Store:          st,
				Metrics:        m.Handler(),
				Logger:         c.Logger,
				RequestTimeout: timeout,
			})
			printInfo(cmd.ErrOrStderr(), "Serving on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cacheCfg.addFlags(cmd)
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for report storage (default: in memory)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "time limit per analysis")
	return cmd
}

func (c *CLI) openStore(ctx context.Context, uri, database string) (store.Store, error) {
	if uri == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, uri, database)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("storing reports in MongoDB", "database", database)
	return st, nil
}
