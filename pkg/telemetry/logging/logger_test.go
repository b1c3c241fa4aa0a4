package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: level, Format: format, Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return logger, buf
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"json", Config{Level: "info", Format: "json"}, false},
		{"text", Config{Level: "debug", Format: "text"}, false},
		{"console", Config{Level: "warn", Format: "console"}, false},
		{"defaults", Config{}, false},
		{"invalid level", Config{Level: "verbose"}, true},
		{"invalid format", Config{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{"debug level logs debug", "debug", func(l *Logger, msg string) { l.Debug(msg) }, true},
		{"info level filters debug", "info", func(l *Logger, msg string) { l.Debug(msg) }, false},
		{"info level logs info", "info", func(l *Logger, msg string) { l.Info(msg) }, true},
		{"warn level filters info", "warn", func(l *Logger, msg string) { l.Info(msg) }, false},
		{"warn level logs warn", "warn", func(l *Logger, msg string) { l.Warn(msg) }, true},
		{"error level filters warn", "error", func(l *Logger, msg string) { l.Warn(msg) }, false},
		{"error level logs error", "error", func(l *Logger, msg string) { l.Error(msg) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestLogger(t, tt.logLevel, "json")
			tt.logMethod(logger, "test message")
			if got := strings.Contains(buf.String(), "test message"); got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output: %s)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")
	logger.Info("compiled", "items", 3, "warnings", 0, "dialect", "zed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "compiled" {
		t.Errorf("msg = %v, want compiled", entry["msg"])
	}
	if entry["items"] != float64(3) {
		t.Errorf("items = %v, want 3", entry["items"])
	}
	if entry["dialect"] != "zed" {
		t.Errorf("dialect = %v, want zed", entry["dialect"])
	}
}

func TestLogger_With(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")
	logger.With("component", "watch").Info("started")

	for _, want := range []string{`"component":"watch"`, `"msg":"started"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output %s missing %s", buf.String(), want)
		}
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-789")
	ctx = WithSourceFile(ctx, "hw1.txt")

	tests := []struct {
		name string
		log  func(*Logger)
	}{
		{"DebugContext", func(l *Logger) { l.DebugContext(ctx, "msg") }},
		{"InfoContext", func(l *Logger) { l.InfoContext(ctx, "msg") }},
		{"WarnContext", func(l *Logger) { l.WarnContext(ctx, "msg") }},
		{"ErrorContext", func(l *Logger) { l.ErrorContext(ctx, "msg") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestLogger(t, "debug", "json")
			tt.log(logger)
			for _, want := range []string{`"run_id":"run-789"`, `"source_file":"hw1.txt"`} {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %s missing %s", buf.String(), want)
				}
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	tests := []struct {
		format   string
		wantTime bool
	}{
		{"json", true},
		{"text", true},
		{"console", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			logger, buf := newTestLogger(t, "info", tt.format)
			logger.Info("test message", "key", "value")

			output := buf.String()
			if !strings.Contains(output, "test message") {
				t.Errorf("message not found in %s output: %s", tt.format, output)
			}
			if got := strings.Contains(output, "time"); got != tt.wantTime {
				t.Errorf("time field present = %v, want %v: %s", got, tt.wantTime, output)
			}
		})
	}
}

func TestLogger_AddSource(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", AddSource: true, Writer: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("test message")

	if !strings.Contains(buf.String(), "source") {
		t.Errorf("source field not found in output: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	if logger.Enabled(slog.LevelError) {
		t.Error("Discard() logger reports error level enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    LogFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"console", FormatConsole, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
