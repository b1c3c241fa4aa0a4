package main

import (
	"errors"
	"fmt"
	"time"

	"zedtex/zedtex/pkg/cache"
	"zedtex/zedtex/pkg/cli"

	"github.com/spf13/cobra"
)

var cacheFlags struct {
	olderThan time.Duration
	format    string
}

var errCacheDisabled = errors.New("cache is disabled (cache.enabled: false)")

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and prune the compile cache",
	Long: `Inspect and prune the compile cache.

Only the sqlite backend persists between runs; the memory backend is empty
in a fresh process.`,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old cache entries",
	Long: `Remove cache entries older than --older-than (default cache.ttl).

Examples:
  zedtex cache prune
  zedtex cache prune --older-than 24h`,
	Args: cobra.NoArgs,
	RunE: runCachePrune,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	cachePruneCmd.Flags().DurationVar(&cacheFlags.olderThan, "older-than", 0, "age cutoff (uses cache.ttl if not specified)")
	cacheStatsCmd.Flags().StringVar(&cacheFlags.format, "format", "text", "output format: text, json, yaml")
}

func openCache() (cache.Store, time.Duration, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, 0, err
	}
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open cache: %w", err)
	}
	if store == nil {
		return nil, 0, errCacheDisabled
	}
	return store, cfg.Cache.TTL, nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	store, ttl, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	if cacheFlags.olderThan > 0 {
		ttl = cacheFlags.olderThan
	}

	removed, err := cache.NewScheduler(store, ttl, "").RunOnce(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries older than %s\n", removed, ttl)
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(cacheFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return err
	}
	store, _, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	if format != cli.FormatText {
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend: %s\n", stats.Backend)
	fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
	fmt.Fprintf(out, "Bytes:   %d\n", stats.Bytes)
	if !stats.Oldest.IsZero() {
		fmt.Fprintf(out, "Oldest:  %s\n", stats.Oldest.Format(time.RFC3339))
	}
	return nil
}
