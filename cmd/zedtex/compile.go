package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"zedtex/zedtex/pkg/cli"
	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/gitsource"
	"zedtex/zedtex/pkg/server"
	"zedtex/zedtex/pkg/zed/generator"

	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

var compileFlags struct {
	dialect      string
	output       string
	standalone   bool
	format       string
	maxLineWidth int
	progress     bool
	rev          string
}

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile whiteboard notation to LaTeX",
	Long: `Compile whiteboard notation files to LaTeX.

With no files, or "-", the source is read from stdin. A single input is
written to stdout unless --output names a file. With several inputs each
FILE.txt is written to FILE.tex alongside it, or into the --output directory.

Errors are printed to stderr with their location and the offending line.
The exit status is 1 if any input fails.

Examples:
  # Compile to stdout in the fuzz dialect
  zedtex compile homework.txt

  # zed-cm output as a complete document
  zedtex compile --dialect zed --standalone -o homework.tex homework.txt

  # Compile a batch into build/
  zedtex compile -o build/ --progress ch*.txt

  # Compile the version of a file from the previous commit
  zedtex compile --rev HEAD~1 homework.txt

  # Machine-readable results
  zedtex compile --format json homework.txt`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileFlags.dialect, "dialect", "d", "", "output dialect: fuzz, zed (uses config if not specified)")
	compileCmd.Flags().StringVarP(&compileFlags.output, "output", "o", "", "output file, or directory for several inputs")
	compileCmd.Flags().BoolVar(&compileFlags.standalone, "standalone", false, "wrap output in a complete LaTeX document")
	compileCmd.Flags().StringVar(&compileFlags.format, "format", "text", "output format: text, json")
	compileCmd.Flags().IntVar(&compileFlags.maxLineWidth, "max-line-width", -1, "warn about boxed lines wider than this; 0 disables, -1 uses config")
	compileCmd.Flags().BoolVar(&compileFlags.progress, "progress", false, "show a progress bar for several inputs")
	compileCmd.Flags().StringVar(&compileFlags.rev, "rev", "", "read inputs as committed at this git revision")
}

// compileReport is one input's result in --format json.
type compileReport struct {
	File     string               `json:"file"`
	Output   string               `json:"output"`
	Warnings []server.WarningBody `json:"warnings"`
	Error    *server.ErrorBody    `json:"error"`
	Cached   bool                 `json:"cached,omitempty"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(compileFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	if format == cli.FormatJSON && compileFlags.output != "" {
		return cli.NewFlagError("output", compileFlags.output, "cannot be combined with --format json")
	}

	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err := applyCompileFlags(*loaded)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := newApp(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	if compileFlags.rev != "" {
		for _, input := range inputs {
			if input == "-" {
				return cli.NewFlagError("rev", compileFlags.rev, "cannot be combined with stdin")
			}
		}
	}
	multi := len(inputs) > 1

	rep := newReporter(cmd.ErrOrStderr())
	var progress cli.ProgressReporter = cli.NoProgress{}
	if compileFlags.progress && multi {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
	}

	reports := make([]compileReport, 0, len(inputs))
	failed := 0
	progress.Start(len(inputs))
	for _, input := range inputs {
		report := compileOne(ctx, cmd, a.compiler, input, multi, format, rep, compileFlags.progress)
		if report.Error != nil {
			failed++
		}
		reports = append(reports, report)
		progress.Step(report.File, report.Error == nil)
	}
	progress.Finish()

	if format == cli.FormatJSON {
		var data any = reports
		if !multi {
			data = reports[0]
		}
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), data); err != nil {
			return err
		}
	}

	if failed > 0 {
		return &cli.CompileFailure{Failed: failed, Total: len(inputs)}
	}
	return nil
}

// compileOne compiles and writes one input. In text mode diagnostics go to
// rep as they happen; in json mode they are only returned in the report.
func compileOne(ctx context.Context, cmd *cobra.Command, comp *compiler.Compiler, input string, multi bool, format cli.OutputFormat, rep *cli.Reporter, quiet bool) compileReport {
	text := format == cli.FormatText

	fail := func(report compileReport, err error) compileReport {
		if text {
			rep.Error(err)
		}
		report.Error = server.DescribeError(err)
		return report
	}

	source, name, err := readSource(cmd.InOrStdin(), input, compileFlags.rev)
	report := compileReport{File: name}
	if err != nil {
		return fail(report, err)
	}

	result, err := comp.Compile(ctx, compiler.Request{
		Name:    name,
		Source:  source,
		Dialect: comp.Options().Dialect,
	})
	if err != nil {
		return fail(report, err)
	}

	report.Output = result.Output
	report.Warnings = server.DescribeWarnings(result.Warnings)
	report.Cached = result.Cached
	if !text {
		return report
	}

	for _, w := range result.Warnings {
		rep.Warning(w)
	}

	dest, err := outputPath(input, multi, compileFlags.output)
	if err != nil {
		return fail(report, err)
	}
	if err := writeOutput(cmd.OutOrStdout(), dest, result.Output); err != nil {
		return fail(report, err)
	}
	if dest != "" && !quiet {
		rep.Success("wrote %s", dest)
	}
	return report
}

// applyCompileFlags returns cfg with the compile flags applied.
func applyCompileFlags(cfg config.Config) (*config.Config, error) {
	if err := applyDialect(&cfg, compileFlags.dialect); err != nil {
		return nil, err
	}
	if compileFlags.standalone {
		cfg.Compiler.Standalone = true
	}
	if compileFlags.maxLineWidth >= 0 {
		cfg.Compiler.MaxLineWidth = compileFlags.maxLineWidth
	}
	return &cfg, nil
}

// applyDialect sets the compiler dialect from a --dialect value; empty keeps
// the configured one.
func applyDialect(cfg *config.Config, name string) error {
	if name == "" {
		return nil
	}
	d, err := generator.ParseDialect(name)
	if err != nil {
		return cli.NewFlagError("dialect", name, "must be fuzz or zed")
	}
	cfg.Compiler.Dialect = d.String()
	return nil
}

// readInput reads a file, or stdin for "-".
func readInput(stdin io.Reader, input string) (source, name string, err error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", stdinName, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), stdinName, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", input, err
	}
	return string(data), input, nil
}

// readSource reads input from the working tree, or from git when rev is set.
// Sources read from git are named path@sha.
func readSource(stdin io.Reader, input, rev string) (source, name string, err error) {
	if rev == "" {
		return readInput(stdin, input)
	}
	repo, err := gitsource.Open(filepath.Dir(input))
	if err != nil {
		return "", input, err
	}
	source, commit, err := repo.ReadFile(rev, input)
	if err != nil {
		return "", input, err
	}
	return source, input + "@" + commit.ShortSHA(), nil
}

// outputPath picks where an input's LaTeX goes; "" means stdout.
func outputPath(input string, multi bool, output string) (string, error) {
	if output == "-" {
		return "", nil
	}
	if !multi {
		return output, nil
	}
	if input == "-" {
		return "", nil
	}
	tex, err := texPath(input)
	if err != nil {
		return "", err
	}
	if output == "" {
		return tex, nil
	}
	return filepath.Join(output, filepath.Base(tex)), nil
}

// texPath replaces the input's extension with .tex.
func texPath(input string) (string, error) {
	ext := filepath.Ext(input)
	if strings.EqualFold(ext, ".tex") {
		return "", fmt.Errorf("%s: refusing to overwrite a .tex input", input)
	}
	return strings.TrimSuffix(input, ext) + ".tex", nil
}

func writeOutput(stdout io.Writer, dest, text string) error {
	if dest == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// commandContext returns the command's context, or Background for commands
// run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func newReporter(w io.Writer) *cli.Reporter {
	if f, ok := w.(*os.File); ok {
		return reporter(f)
	}
	return cli.NewReporter(w, false)
}
