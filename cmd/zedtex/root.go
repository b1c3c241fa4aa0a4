package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"zedtex/zedtex/pkg/cli"
	"zedtex/zedtex/pkg/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "zedtex",
	Short: "zedtex - whiteboard notation to Z notation LaTeX",
	Long: `zedtex translates whiteboard-style mathematical notation into LaTeX for
the fuzz and zed-cm Z notation packages.

Input is plain text: propositional and predicate logic, set theory, Z schemas,
axiomatic and generic definitions, free types, proof trees, equivalence chains
and truth tables, mixed with prose paragraphs.

Configuration is read from --config (YAML or TOML) and ZEDTEX_* environment
variables. Without a config file the defaults are used.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits 1 on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var failure *cli.CompileFailure
		if !stderrors.As(err, &failure) {
			reporter(os.Stderr).Error(err)
		} else if failure.Total > 1 {
			fmt.Fprintln(os.Stderr, failure.Error())
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// loadConfig loads the configuration once per process.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("failed to load config from %q", cfgFile)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// useColor reports whether diagnostics written to f should be styled.
func useColor(f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func reporter(f *os.File) *cli.Reporter {
	return cli.NewReporter(f, useColor(f))
}
