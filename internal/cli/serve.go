package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/internal/server"
	"github.com/matzehuels/strata/pkg/cache"
	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		mongo   string
		maxBody int64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Results are cached in Redis when --redis is given, else in the local file
cache. Laid-out graphs are kept in MongoDB when --mongo is given, else in
memory. Prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Server.Addr = addr
			}
			if flags.Changed("redis") {
				cfg.Server.Redis = redis
			}
			if flags.Changed("mongo") {
				cfg.Server.Mongo = mongo
			}
			if flags.Changed("max-body") {
				cfg.Server.MaxBodyBytes = maxBody
			}
			ctx := cmd.Context()

			opts, err := pipelineOptions(cfg)
			if err != nil {
				return err
			}

			cc, err := c.serverCache(ctx, cfg.Server.Redis, cfg.Cache.Disabled || noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, keyerFor(cfg.Cache), c.Logger)
			defer runner.Close()

			st, err := c.serverStore(ctx, cfg.Server.Mongo)
			if err != nil {
				return err
			}
			defer st.Close()

			metrics := server.NewMetrics()
			metrics.Register()

			srv := server.New(runner, st, server.Config{
				Addr:         cfg.Server.Addr,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Options:      opts,
				Metrics:      metrics,
				Logger:       c.Logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: "+pipeline.DefaultAddr+")")
	cmd.Flags().StringVar(&redis, "redis", "", "Redis address or redis:// URL for the result cache")
	cmd.Flags().StringVar(&mongo, "mongo", "", "MongoDB URI for stored layouts")
	cmd.Flags().Int64Var(&maxBody, "max-body", 0, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) serverCache(ctx context.Context, redisAddr string, disabled bool) (cache.Cache, error) {
	switch {
	case disabled:
		return cache.NewNullCache(), nil
	case redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return rc, nil
	}
	dir, err := c.localCacheDir()
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using file cache", "dir", dir)
	return cache.NewFileCache(dir)
}

func (c *CLI) serverStore(ctx context.Context, uri string) (store.Store, error) {
	if uri == "" {
		c.Logger.Info("using in-memory layout store")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, uri, "", "")
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("using mongo layout store")
	return ms, nil
}
