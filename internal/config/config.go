// Package config provides configuration loading for clausewise.
package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the full clausewise configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Rules      RulesConfig      `koanf:"rules"`
	Thresholds ThresholdsConfig `koanf:"thresholds"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled        bool     `koanf:"enabled"`
	Endpoint       string   `koanf:"endpoint"`
	Insecure       bool     `koanf:"insecure"`
	ServiceName    string   `koanf:"service_name"`
	ServiceVersion string   `koanf:"service_version"`
	SamplingRate   float64  `koanf:"sampling_rate"`
	MetricsEnabled bool     `koanf:"metrics_enabled"`
	ExportInterval Duration `koanf:"export_interval"`
}

// RulesConfig configures rule corpus loading.
type RulesConfig struct {
	// OverlayPath is an optional YAML file of additional rules merged into
	// the built-in corpus at startup.
	OverlayPath string `koanf:"overlay_path"`
}

// ThresholdsConfig carries per-organization risk-threshold percentages.
//
// The engine's classifier uses fixed cutoffs (90/70/50); these configured
// thresholds are reported alongside analysis results so callers can apply
// their own banding. Wiring them into the classifier itself is a pending
// product decision, so the discrepancy is surfaced rather than hidden.
type ThresholdsConfig struct {
	Low    int `koanf:"low"`
	Medium int `koanf:"medium"`
	High   int `koanf:"high"`
}

// Validate checks the configuration, failing closed on invalid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}

	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry enabled but endpoint is empty")
	}
	if c.Telemetry.SamplingRate < 0 || c.Telemetry.SamplingRate > 1 {
		return fmt.Errorf("telemetry sampling rate %v out of range [0,1]", c.Telemetry.SamplingRate)
	}

	if c.Thresholds.Low < c.Thresholds.Medium || c.Thresholds.Medium < c.Thresholds.High {
		return fmt.Errorf("risk thresholds must be ordered low >= medium >= high")
	}
	if c.Thresholds.Low > 100 || c.Thresholds.High < 0 {
		return fmt.Errorf("risk thresholds must be percentages in [0,100]")
	}

	return nil
}
