// Package health provides liveness and readiness probes for the zedtex
// HTTP server.
//
// Liveness answers as long as the process runs. Readiness runs every
// registered check concurrently, each bounded by the check timeout, and
// answers 503 if any fails.
//
// # Usage
//
//	checker := health.New(5 * time.Second).WithVersion("0.3.0")
//	checker.RegisterCheck("compiler", comp.HealthCheck)
//	health.Mount(mux, checker, cfg.Telemetry.Health)
package health
