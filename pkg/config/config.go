package config

import "time"

// Config is the root configuration structure for zedtex.
// It covers the compiler itself, prose detection, the output cache, the
// HTTP compile service, watch mode and telemetry.
type Config struct {
	// Compiler contains the defaults for every compilation.
	Compiler CompilerConfig `yaml:"compiler" toml:"compiler"`

	// Prose contains the word lists used to recognize English lines.
	Prose ProseConfig `yaml:"prose" toml:"prose"`

	// Cache contains compile-output cache configuration.
	Cache CacheConfig `yaml:"cache" toml:"cache"`

	// Server contains HTTP compile service configuration.
	Server ServerConfig `yaml:"server" toml:"server"`

	// Watch contains recompile-on-save configuration.
	Watch WatchConfig `yaml:"watch" toml:"watch"`

	// Telemetry contains configuration for logging, metrics, tracing and
	// health checks.
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
}

// CompilerConfig contains compilation defaults.
type CompilerConfig struct {
	// Dialect selects the LaTeX vocabulary.
	// Options: "fuzz", "zed"
	// Default: "fuzz"
	Dialect string `yaml:"dialect" toml:"dialect"`

	// MaxLineWidth is the length above which lines of boxed environments
	// produce warnings. 0 disables the check.
	// Default: 80
	MaxLineWidth int `yaml:"max_line_width" toml:"max_line_width"`

	// Standalone wraps output in a complete LaTeX document.
	// Default: false
	Standalone bool `yaml:"standalone" toml:"standalone"`
}

// ProseConfig configures prose line detection. Empty lists keep the
// built-in word lists.
type ProseConfig struct {
	// Starters are words that open a sentence.
	Starters []string `yaml:"starters" toml:"starters"`

	// Indicators are words that mark a line as a sentence.
	Indicators []string `yaml:"indicators" toml:"indicators"`

	// Lookahead is how many words after the first are searched for an indicator.
	// Default: 6
	Lookahead int `yaml:"lookahead" toml:"lookahead"`
}

// CacheConfig contains compile-output cache configuration.
type CacheConfig struct {
	// Enabled controls whether compile results are cached.
	// Default: true
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Backend selects the store.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend" toml:"backend"`

	// Driver selects the SQLite driver when Backend is "sqlite".
	// Options: "modernc" (pure Go), "cgo" (mattn/go-sqlite3)
	// Default: "modernc"
	Driver string `yaml:"driver" toml:"driver"`

	// Path is the SQLite database file.
	// Default: "zedtex-cache.db"
	Path string `yaml:"path" toml:"path"`

	// TTL is how long an entry is kept before pruning removes it.
	// Default: 168h
	TTL time.Duration `yaml:"ttl" toml:"ttl"`

	// PruneSchedule is a cron expression for periodic pruning. Empty disables
	// scheduled pruning.
	// Default: "0 4 * * *"
	PruneSchedule string `yaml:"prune_schedule" toml:"prune_schedule"`
}

// ServerConfig contains configuration for the HTTP compile service.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a
	// keep-alive connection.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout" toml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`

	// MaxBodyBytes limits the size of a compile request.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// WatchConfig contains recompile-on-save configuration.
type WatchConfig struct {
	// Debounce is how long a file must be quiet before it is recompiled.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`

	// Extensions lists the source file extensions watched in directories.
	// Default: [".txt", ".zed"]
	Extensions []string `yaml:"extensions" toml:"extensions"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing" toml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health" toml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" toml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format" toml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source" toml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path" toml:"path"`

	// Namespace is the metric name prefix.
	// Default: "zedtex"
	Namespace string `yaml:"namespace" toml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "compiler"
	Subsystem string `yaml:"subsystem" toml:"subsystem"`

	// DurationBuckets defines histogram buckets for stage durations (seconds).
	// Default: [0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1]
	DurationBuckets []float64 `yaml:"duration_buckets" toml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" toml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio"`

	// Endpoint is the OTLP/gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint" toml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "zedtex"
	ServiceName string `yaml:"service_name" toml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure" toml:"insecure"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health check endpoints are enabled.
	// Default: true
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path" toml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path" toml:"readiness_path"`

	// CheckTimeout is the timeout for individual component health checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout" toml:"check_timeout"`
}
