package main

import (
	"context"
	"os"
	"path/filepath"

	"zedtex/zedtex/pkg/cli"
	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/watch"

	"github.com/spf13/cobra"
)

var watchFlags struct {
	dialect   string
	outputDir string
}

var watchCmd = &cobra.Command{
	Use:   "watch PATH...",
	Short: "Recompile sources when they change",
	Long: `Watch files and directories and recompile each source when it is saved.

Directories are watched recursively for the extensions in watch.extensions
(default .txt and .zed). Files named on the command line are watched whatever
their extension. Each FILE.txt is written to FILE.tex alongside it, or into
--output-dir.

When a config file was given with --config it is watched too, and saving it
applies the new compiler and prose settings to later rebuilds.

Examples:
  zedtex watch notes/
  zedtex watch --dialect zed --output-dir build/ homework.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.dialect, "dialect", "d", "", "output dialect: fuzz, zed (uses config if not specified)")
	watchCmd.Flags().StringVar(&watchFlags.outputDir, "output-dir", "", "directory for generated .tex files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := *loaded
	if err := applyDialect(&cfg, watchFlags.dialect); err != nil {
		return err
	}

	a, err := newApp(&cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	rep := newReporter(cmd.ErrOrStderr())

	var cfgPath string
	if p := config.Path(); p != "" {
		if cfgPath, err = filepath.Abs(p); err != nil {
			return err
		}
	}

	// Handler calls are serialized, so comp needs no lock.
	comp := a.compiler
	w, err := watch.New(cfg.Watch, func(ctx context.Context, path string) {
		if path == cfgPath {
			next, err := reloadCompiler(a, cfgPath, watchFlags.dialect)
			if err != nil {
				rep.Error(err)
				return
			}
			comp = next
			rep.Success("reloaded %s", cfgPath)
			return
		}
		rebuild(ctx, comp, rep, path, watchFlags.outputDir)
	})
	if err != nil {
		return err
	}
	w.WithLogger(a.telemetry.Logger())

	for _, p := range args {
		if err := w.Add(p); err != nil {
			return err
		}
	}
	if cfgPath != "" {
		if err := w.Add(cfgPath); err != nil {
			return err
		}
	}

	ctx, stop := cli.SignalContext(commandContext(cmd))
	defer stop()

	rep.Success("watching %d path(s), press Ctrl+C to stop", len(args))
	return w.Run(ctx)
}

// reloadCompiler re-reads the config file and builds a compiler from it. The
// --dialect flag still takes precedence over the file.
func reloadCompiler(a *app, path, dialect string) (*compiler.Compiler, error) {
	loaded, err := config.Reload(path)
	if err != nil {
		return nil, err
	}
	cfg := *loaded
	if err := applyDialect(&cfg, dialect); err != nil {
		return nil, err
	}
	return a.newCompiler(&cfg)
}

// rebuild compiles path and writes its .tex file, reporting the outcome.
func rebuild(ctx context.Context, comp *compiler.Compiler, rep *cli.Reporter, path, outputDir string) {
	source, err := os.ReadFile(path)
	if err != nil {
		rep.Error(err)
		return
	}

	dest, err := texPath(path)
	if err != nil {
		rep.Error(err)
		return
	}
	if outputDir != "" {
		dest = filepath.Join(outputDir, filepath.Base(dest))
	}

	result, err := comp.Compile(ctx, compiler.Request{
		Name:    path,
		Source:  string(source),
		Dialect: comp.Options().Dialect,
	})
	if err != nil {
		rep.Error(err)
		return
	}
	for _, w := range result.Warnings {
		rep.Warning(w)
	}

	if err := writeOutput(nil, dest, result.Output); err != nil {
		rep.Error(err)
		return
	}
	rep.Success("wrote %s", dest)
}
