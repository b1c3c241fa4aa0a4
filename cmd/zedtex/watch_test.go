package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zedtex/zedtex/pkg/cli"
	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/zed"
	"zedtex/zedtex/pkg/zed/generator"
)

func TestRebuild(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hw.txt")
	if err := os.WriteFile(src, []byte("p and q => r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	comp := compiler.New(zed.DefaultOptions())

	t.Run("alongside", func(t *testing.T) {
		var log bytes.Buffer
		rebuild(context.Background(), comp, cli.NewReporter(&log, false), src, "")

		data, err := os.ReadFile(filepath.Join(dir, "hw.tex"))
		if err != nil {
			t.Fatalf("hw.tex not written: %v", err)
		}
		if !strings.Contains(string(data), `\implies`) {
			t.Errorf("hw.tex = %q", data)
		}
		if !strings.Contains(log.String(), "wrote "+filepath.Join(dir, "hw.tex")) {
			t.Errorf("log = %q", log.String())
		}
	})

	t.Run("output dir", func(t *testing.T) {
		out := filepath.Join(dir, "build")
		var log bytes.Buffer
		rebuild(context.Background(), comp, cli.NewReporter(&log, false), src, out)

		if _, err := os.Stat(filepath.Join(out, "hw.tex")); err != nil {
			t.Errorf("build/hw.tex not written: %v", err)
		}
	})

	t.Run("error keeps previous output", func(t *testing.T) {
		if err := os.WriteFile(src, []byte("p and\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		var log bytes.Buffer
		rebuild(context.Background(), comp, cli.NewReporter(&log, false), src, "")

		if !strings.Contains(log.String(), "error[parse]") {
			t.Errorf("log = %q, want the parse error", log.String())
		}
		data, _ := os.ReadFile(filepath.Join(dir, "hw.tex"))
		if !strings.Contains(string(data), `\implies`) {
			t.Error("failed rebuild replaced the previous output")
		}
	})
}

func TestReloadCompiler(t *testing.T) {
	cfg := useConfig(t, nil)
	a, err := newApp(cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close(context.Background())

	path := filepath.Join(t.TempDir(), "zedtex.yaml")
	if err := os.WriteFile(path, []byte("compiler:\n  dialect: zed\n  max_line_width: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	comp, err := reloadCompiler(a, path, "")
	if err != nil {
		t.Fatalf("reloadCompiler() error = %v", err)
	}
	if got := comp.Options(); got.Dialect != generator.Zed || got.MaxLineWidth != 50 {
		t.Errorf("options = %+v, want zed at width 50", got)
	}
	if config.GetConfig().Compiler.Dialect != "zed" {
		t.Error("reload did not replace the global configuration")
	}

	comp, err = reloadCompiler(a, path, "fuzz")
	if err != nil {
		t.Fatal(err)
	}
	if comp.Options().Dialect != generator.Fuzz {
		t.Error("--dialect did not override the reloaded file")
	}

	if err := os.WriteFile(path, []byte("compiler:\n  dialect: latex\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := reloadCompiler(a, path, ""); err == nil {
		t.Error("reloadCompiler() with an invalid file should fail")
	}
}

func TestServe_DryRun(t *testing.T) {
	useConfig(t, nil)
	serveFlags.dryRun = true
	serveFlags.listenAddress = "127.0.0.1:0"
	defer func() {
		serveFlags.dryRun = false
		serveFlags.listenAddress = ""
	}()

	cmd, _, _ := newTestCommand()
	if err := runServe(cmd, nil); err != nil {
		t.Errorf("runServe() error = %v", err)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	useConfig(t, nil)
	serveFlags.listenAddress = "127.0.0.1:0"
	defer func() { serveFlags.listenAddress = "" }()

	ctx, cancel := context.WithCancel(context.Background())
	cmd, _, _ := newTestCommand()
	cmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() { done <- runServe(cmd, nil) }()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("runServe() error = %v", err)
	}
}
