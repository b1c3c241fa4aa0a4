package config

import (
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"compiler.dialect", cfg.Compiler.Dialect, DefaultDialect},
		{"compiler.max_line_width", cfg.Compiler.MaxLineWidth, DefaultMaxLineWidth},
		{"prose.lookahead", cfg.Prose.Lookahead, DefaultProseLookahead},
		{"cache.enabled", cfg.Cache.Enabled, true},
		{"cache.backend", cfg.Cache.Backend, "memory"},
		{"cache.driver", cfg.Cache.Driver, "modernc"},
		{"cache.ttl", cfg.Cache.TTL, 7 * 24 * time.Hour},
		{"cache.prune_schedule", cfg.Cache.PruneSchedule, "0 4 * * *"},
		{"server.listen_address", cfg.Server.ListenAddress, "127.0.0.1:8080"},
		{"server.shutdown_timeout", cfg.Server.ShutdownTimeout, 15 * time.Second},
		{"server.max_body_bytes", cfg.Server.MaxBodyBytes, int64(1 << 20)},
		{"watch.debounce", cfg.Watch.Debounce, 200 * time.Millisecond},
		{"telemetry.logging.level", cfg.Telemetry.Logging.Level, "info"},
		{"telemetry.logging.format", cfg.Telemetry.Logging.Format, "console"},
		{"telemetry.metrics.enabled", cfg.Telemetry.Metrics.Enabled, true},
		{"telemetry.metrics.namespace", cfg.Telemetry.Metrics.Namespace, "zedtex"},
		{"telemetry.tracing.enabled", cfg.Telemetry.Tracing.Enabled, false},
		{"telemetry.tracing.sampler", cfg.Telemetry.Tracing.Sampler, "always"},
		{"telemetry.health.liveness_path", cfg.Telemetry.Health.LivenessPath, "/health"},
		{"telemetry.health.readiness_path", cfg.Telemetry.Health.ReadinessPath, "/ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if !reflect.DeepEqual(cfg.Watch.Extensions, DefaultWatchExtensions) {
		t.Errorf("watch.extensions = %v, want %v", cfg.Watch.Extensions, DefaultWatchExtensions)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) error = %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Compiler: CompilerConfig{Dialect: "zed", MaxLineWidth: 60},
		Cache:    CacheConfig{Backend: "sqlite", Path: "/tmp/c.db"},
		Server:   ServerConfig{ListenAddress: ":9000"},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Level: "debug"},
		},
	}

	ApplyDefaults(cfg)

	if cfg.Compiler.Dialect != "zed" {
		t.Errorf("compiler.dialect = %q, want zed", cfg.Compiler.Dialect)
	}
	if cfg.Compiler.MaxLineWidth != 60 {
		t.Errorf("compiler.max_line_width = %d, want 60", cfg.Compiler.MaxLineWidth)
	}
	if cfg.Cache.Path != "/tmp/c.db" {
		t.Errorf("cache.path = %q, want /tmp/c.db", cfg.Cache.Path)
	}
	if cfg.Server.ListenAddress != ":9000" {
		t.Errorf("server.listen_address = %q, want :9000", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("telemetry.logging.level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != DefaultLoggingFormat {
		t.Errorf("telemetry.logging.format = %q, want %q", cfg.Telemetry.Logging.Format, DefaultLoggingFormat)
	}
	if cfg.Cache.Enabled {
		t.Error("ApplyDefaults should not turn on cache.enabled")
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	first := *cfg
	ApplyDefaults(cfg)

	if !reflect.DeepEqual(first, *cfg) {
		t.Errorf("ApplyDefaults is not idempotent:\nfirst  %+v\nsecond %+v", first, *cfg)
	}
}

func TestDefault_SlicesAreCopies(t *testing.T) {
	cfg := Default()
	cfg.Watch.Extensions[0] = ".tex"
	cfg.Telemetry.Metrics.DurationBuckets[0] = 42

	if DefaultWatchExtensions[0] != ".txt" {
		t.Errorf("DefaultWatchExtensions was modified: %v", DefaultWatchExtensions)
	}
	if DefaultDurationBuckets[0] != 0.0005 {
		t.Errorf("DefaultDurationBuckets was modified: %v", DefaultDurationBuckets)
	}
}
