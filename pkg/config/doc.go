// Package config provides configuration management for zedtex.
//
// Configuration is read from a YAML (.yaml, .yml) or TOML (.toml) file and
// may be overridden by environment variables. Both formats share one set of
// field names:
//
//	compiler:
//	  dialect: zed
//	  max_line_width: 72
//	cache:
//	  backend: sqlite
//	  driver: modernc
//	  path: ~/.cache/zedtex.db
//	  prune_schedule: "0 4 * * *"
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ZEDTEX_SECTION_FIELD:
//
//   - ZEDTEX_COMPILER_DIALECT overrides compiler.dialect
//   - ZEDTEX_CACHE_BACKEND overrides cache.backend
//   - ZEDTEX_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - ZEDTEX_PROSE_STARTERS overrides prose.starters (comma-separated)
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	if err := config.Initialize("zedtex.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// For testing, prefer passing explicit Config values.
package config
