// Package logging provides structured logging on top of log/slog.
//
// # Overview
//
// The package adds to slog:
//   - JSON, text and console (text without timestamps) formats
//   - Level and format parsing from configuration strings
//   - Context-aware logging: run_id, source_file, dialect, request_id,
//     trace_id and span_id stored in a context.Context are added to every
//     *Context call
//
// The compiler core never logs; the host packages (compiler, server, watch,
// cache) do.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "console",
//	})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithSourceFile(ctx, "homework.txt")
//	logger.DebugContext(ctx, "parsed", "items", len(doc.Items))
//
// Logs go to stderr by default; stdout is reserved for generated LaTeX.
package logging
