// Package logging provides structured logging utilities for hwstat.
//
// # Overview
//
// This package wraps the standard library slog package with hwstat-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("hwstat", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("tick complete", "sources", 12)
//	    slog.Debug("source faulted", "group", "coretemp", "source", "Core 0")
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("hwstat-serve", "v2.0.0", "debug")
//	logger.Info("server starting", "port", 8080)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("hwstat", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug hwstat snapshot
//	LOG_LEVEL=error hwstat serve
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "scheduler started",
//	    "module": "hwstat",
//	    "version": "v1.0.0",
//	    "period": "2s"
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "github.com/NVIDIA/hwstat/pkg/sampler.(*Engine).Tick",
//	        "file": "engine.go",
//	        "line": 45
//	    },
//	    "msg": "tick complete",
//	    "module": "hwstat",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("hwstat", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("catalogue sealed",
//	    "groups", 4,
//	    "sources", 38,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("tick complete", "read", 12)   // Development/troubleshooting
//	slog.Info("scheduler started")            // Normal operations
//	slog.Warn("source read failed")           // Source fuse tripped
//	slog.Error("sampling engine poisoned")    // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Warn("source read failed",
//	    "error", err,
//	    "path", path,
//	    "text", raw,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging (JSON for serve, text for watch)
//   - pkg/collector - discovery and per-read diagnostics
//   - pkg/sampler - tick and fault-latch logging
//   - pkg/server - HTTP request logging
//
// All components share consistent logging format and configuration.
package logging
