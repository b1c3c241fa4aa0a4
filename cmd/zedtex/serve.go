package main

import (
	"context"
	"time"

	"zedtex/zedtex/pkg/cache"
	"zedtex/zedtex/pkg/cli"
	"zedtex/zedtex/pkg/server"

	"github.com/spf13/cobra"
)

var serveFlags struct {
	listenAddress string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compiler over HTTP",
	Long: `Start the HTTP compile service.

Routes:
  POST /v1/compile   {"source": "...", "dialect": "zed", "name": "hw1.txt"}
  GET  /health       liveness
  GET  /ready        readiness (runs a canary compile and checks the cache)
  GET  /metrics      Prometheus metrics

The cache is pruned on the cache.prune_schedule cron schedule. SIGINT or
SIGTERM shuts the server down gracefully.

Examples:
  zedtex serve
  zedtex serve --config zedtex.yaml --listen 0.0.0.0:8080
  zedtex serve --dry-run`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}

	a, err := newApp(cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Close(ctx)
	}()

	logger := a.telemetry.Logger()
	if serveFlags.dryRun {
		logger.Info("configuration valid", "listen_address", cfg.Server.ListenAddress)
		return nil
	}

	ctx, stop := cli.SignalContext(commandContext(cmd))
	defer stop()

	checker := a.telemetry.Health()
	if a.store != nil {
		store := a.store
		checker.RegisterCheck("cache", func(ctx context.Context) error {
			_, err := store.Stats(ctx)
			return err
		})

		scheduler := cache.NewScheduler(store, cfg.Cache.TTL, cfg.Cache.PruneSchedule).
			WithLogger(logger).
			WithMetrics(a.telemetry.Metrics())
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	srv := server.NewServer(&cfg.Server, a.compiler).
		WithLogger(logger).
		WithTracer(a.telemetry.Tracer()).
		WithMetrics(a.telemetry.Metrics(), cfg.Telemetry.Metrics.Path).
		WithHealth(checker, cfg.Telemetry.Health)

	return srv.Start(ctx)
}
