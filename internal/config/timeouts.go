package config

import "time"

// TimeoutConfig holds timeout settings shared across packages.
type TimeoutConfig struct {
	// DatabasePing bounds the connectivity check done when opening the pool.
	// Default: 10s
	DatabasePing time.Duration

	// HTTPRequest is the per-request deadline applied by the API router.
	// Default: 60s
	HTTPRequest time.Duration

	// Shutdown bounds graceful HTTP shutdown.
	// Default: 30s
	Shutdown time.Duration
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		DatabasePing: 10 * time.Second,
		HTTPRequest:  60 * time.Second,
		Shutdown:     30 * time.Second,
	}
}

// global instance that can be set at startup
var globalTimeouts = DefaultTimeoutConfig()

// SetGlobalTimeouts sets the global timeout configuration
func SetGlobalTimeouts(cfg *TimeoutConfig) {
	globalTimeouts = cfg
}

// GetTimeouts returns the global timeout configuration
func GetTimeouts() *TimeoutConfig {
	return globalTimeouts
}
