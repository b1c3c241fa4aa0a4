package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"zedtex/zedtex/pkg/cache"
	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/telemetry"
)

// app holds the components a command needs, built from one Config.
type app struct {
	cfg       *config.Config
	telemetry *telemetry.Telemetry
	store     cache.Store
	compiler  *compiler.Compiler
}

// newApp builds telemetry, the cache and the compiler. Logs go to logOut,
// or stderr when nil.
func newApp(cfg *config.Config, logOut io.Writer) (*app, error) {
	tel, err := telemetry.NewWithWriter(&cfg.Telemetry, Version, logOut)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	a := &app{
		cfg:       cfg,
		telemetry: tel,
		store:     store,
	}
	a.compiler, err = a.newCompiler(cfg)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	return a, nil
}

// newCompiler builds a compiler for cfg's compiler and prose settings that
// shares the app's telemetry and cache.
func (a *app) newCompiler(cfg *config.Config) (*compiler.Compiler, error) {
	opts, err := compiler.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	comp := compiler.New(opts).
		WithVersion(Version).
		WithLogger(a.telemetry.Logger()).
		WithMetrics(a.telemetry.Metrics()).
		WithTracer(a.telemetry.Tracer())
	if a.store != nil {
		comp = comp.WithCache(a.store)
	}
	return comp, nil
}

// Close flushes traces and closes the cache.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	if err := a.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
