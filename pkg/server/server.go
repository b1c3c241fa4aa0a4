package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/telemetry/health"
	"zedtex/zedtex/pkg/telemetry/logging"
	"zedtex/zedtex/pkg/telemetry/metrics"
	"zedtex/zedtex/pkg/telemetry/tracing"
)

// CompilePath is the route of the compile endpoint.
const CompilePath = "/v1/compile"

// Server is the HTTP compile service.
type Server struct {
	config   *config.ServerConfig
	compiler *compiler.Compiler

	logger       *logging.Logger
	metrics      *metrics.Collector
	metricsPath  string
	tracer       *tracing.Tracer
	health       *health.Checker
	healthConfig config.HealthConfig

	httpServer   *http.Server
	listener     net.Listener
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server that compiles requests with comp.
func NewServer(cfg *config.ServerConfig, comp *compiler.Compiler) *Server {
	return &Server{
		config:   cfg,
		compiler: comp,
		logger:   logging.Discard(),
		tracer:   tracing.Disabled(),
	}
}

// WithLogger sets the logger.
func (s *Server) WithLogger(logger *logging.Logger) *Server {
	s.logger = logger.With("component", "server")
	return s
}

// WithMetrics serves collector's registry at path. A nil collector leaves
// the route unmounted.
func (s *Server) WithMetrics(collector *metrics.Collector, path string) *Server {
	s.metrics = collector
	s.metricsPath = path
	return s
}

// WithTracer wraps every route in a server span.
func (s *Server) WithTracer(tracer *tracing.Tracer) *Server {
	if tracer != nil {
		s.tracer = tracer
	}
	return s
}

// WithHealth mounts the liveness and readiness probes and registers the
// compiler canary as a readiness check.
func (s *Server) WithHealth(checker *health.Checker, cfg config.HealthConfig) *Server {
	s.health = checker
	s.healthConfig = cfg
	if checker != nil {
		checker.RegisterCheck("compiler", s.compiler.HealthCheck)
	}
	return s
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server is already running")
	}
	s.isRunning = true
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting compile server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown stops accepting connections and waits up to ShutdownTimeout for
// in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		srv := s.httpServer
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx := ctx
		if s.config.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
			defer cancel()
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("compile server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the listening address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(CompilePath, newCompileHandler(s.compiler, s.config.MaxBodyBytes, s.logger))
	if s.health != nil {
		health.Mount(mux, s.health, s.healthConfig)
	}
	if s.metrics != nil && s.metricsPath != "" {
		mux.Handle(s.metricsPath, s.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = tracing.HTTPMiddleware(s.tracer, handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware(handler)
	// Recovery is outermost.
	handler = RecoveryMiddleware(s.logger)(handler)

	return handler
}
