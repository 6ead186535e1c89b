// Package config loads and validates the SDK tool configuration from files,
// environment variables, and flags.
package config

import (
	"time"

	"github.com/nexbase-io/nexbase-go/diag"
)

// Config holds all tool configuration.
type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DiagnosticsConfig configures the client diagnostics core. Durations are
// strings in time.ParseDuration syntax so they read naturally in YAML.
type DiagnosticsConfig struct {
	HistoryCapacity         int    `mapstructure:"history_capacity"`
	LongDisconnectThreshold string `mapstructure:"long_disconnect_threshold"`
}

// DiagConfig converts the loaded values into a diag.Config. It assumes the
// config has passed validation; a malformed threshold falls back to the
// default rather than failing here.
func (c DiagnosticsConfig) DiagConfig() diag.Config {
	cfg := diag.DefaultConfig()
	if c.HistoryCapacity > 0 {
		cfg.HistoryCapacity = c.HistoryCapacity
	}
	if d, err := time.ParseDuration(c.LongDisconnectThreshold); err == nil && d >= 0 {
		cfg.LongDisconnectThreshold = d
	}
	return cfg
}
