// Package cli holds the terminal helpers shared by the zedtex commands.
//
// # Diagnostics
//
// A Reporter prints compile errors with their location and the offending
// source line, styled with lipgloss when color is on:
//
//	rep := cli.NewReporter(os.Stderr, true)
//	if _, err := comp.Compile(ctx, req); err != nil {
//	    rep.Error(err)
//	}
//
// # Output
//
// Results are printed as text, JSON or YAML through a Formatter:
//
//	format, err := cli.ParseFormat(flag, cli.FormatText, cli.FormatJSON)
//	if err != nil {
//	    return err
//	}
//	return cli.NewFormatter(format).FormatTo(os.Stdout, result)
//
// # Signals
//
// SignalContext cancels a context on SIGINT or SIGTERM for commands that run
// until interrupted, such as watch and serve.
package cli
