// Package telemetry initializes OpenTelemetry providers for clausewise.
//
// Telemetry failures do not crash the application; initialization degrades
// gracefully to no-op providers.
package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Config configures telemetry export.
type Config struct {
	// Enabled turns OTLP export on. When false, New returns a no-op instance.
	Enabled bool

	// Endpoint is the OTLP gRPC endpoint (host:port).
	Endpoint string

	// Insecure disables TLS for the OTLP connection.
	Insecure bool

	// ServiceName and ServiceVersion describe the service resource.
	ServiceName    string
	ServiceVersion string

	// SamplingRate in [0,1]; 1 samples every trace.
	SamplingRate float64

	// MetricsEnabled turns metric export on.
	MetricsEnabled bool

	// ExportIntervalSeconds is the periodic metric export interval.
	ExportIntervalSeconds int
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.Enabled && c.Endpoint == "" {
		return fmt.Errorf("telemetry endpoint is required when enabled")
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return fmt.Errorf("sampling rate %v out of range [0,1]", c.SamplingRate)
	}
	return nil
}

// Telemetry manages TracerProvider, MeterProvider, and graceful shutdown.
type Telemetry struct {
	config *Config

	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	degraded atomic.Bool
}

// New creates a Telemetry instance and installs global providers.
//
// Provider initialization errors do not fail startup; the instance degrades
// to the global no-op providers instead.
func New(ctx context.Context, cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	t := &Telemetry{config: cfg}
	if !cfg.Enabled {
		return t, nil
	}

	res, err := newResource(cfg)
	if err != nil {
		t.degraded.Store(true)
		return t, nil
	}

	tp, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		t.degraded.Store(true)
	} else {
		t.tracerProvider = tp
		otel.SetTracerProvider(tp)
	}

	if cfg.MetricsEnabled {
		mp, err := newMeterProvider(ctx, cfg, res)
		if err != nil {
			t.degraded.Store(true)
		} else {
			t.meterProvider = mp
			otel.SetMeterProvider(mp)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return t, nil
}

// Degraded reports whether any provider failed to initialize.
func (t *Telemetry) Degraded() bool {
	return t != nil && t.degraded.Load()
}

// Shutdown flushes and stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var firstErr error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
