// Package telemetry installs OpenTelemetry providers for the CLI. Traces go
// to a stdout-style exporter; metrics are held by a manual reader and
// collected on demand.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const defaultServiceName = "canzero-appdata"

// Config controls which providers are installed.
type Config struct {
	ServiceName   string
	EnableMetrics bool
	EnableTraces  bool
	// TraceWriter receives exported spans. Defaults to stderr so traces never
	// mix with command output.
	TraceWriter io.Writer
}

// Provider owns the meter and tracer providers installed by Setup.
type Provider struct {
	cfg            Config
	meterProvider  *sdkmetric.MeterProvider
	meterReader    *sdkmetric.ManualReader
	tracerProvider *sdktrace.TracerProvider

	shutdownOnce sync.Once
}

// Setup builds the providers requested by cfg and installs them as the otel
// globals. With everything disabled it returns an inert Provider.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.EnableMetrics && !cfg.EnableTraces {
		return &Provider{cfg: cfg}, nil
	}

	if strings.TrimSpace(cfg.ServiceName) == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.TraceWriter == nil {
		cfg.TraceWriter = os.Stderr
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	p := &Provider{cfg: cfg}

	if cfg.EnableMetrics {
		p.meterReader = sdkmetric.NewManualReader()
		p.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(p.meterReader),
			sdkmetric.WithResource(res),
		)
	}

	if cfg.EnableTraces {
		tp, err := createTracerProvider(cfg, res)
		if err != nil {
			if p.meterProvider != nil {
				err = errors.Join(err, p.meterProvider.Shutdown(ctx))
			}
			return nil, err
		}
		p.tracerProvider = tp
	}

	// Globals are only swapped once every provider is built.
	if p.meterProvider != nil {
		otel.SetMeterProvider(p.meterProvider)
	}
	if p.tracerProvider != nil {
		otel.SetTracerProvider(p.tracerProvider)
	}
	return p, nil
}

// newTraceExporter is replaced in tests to exercise exporter failures.
var newTraceExporter = func(w io.Writer) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
}

func createTracerProvider(cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exp, err := newTraceExporter(cfg.TraceWriter)
	if err != nil {
		return nil, fmt.Errorf("init stdout trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	), nil
}

// MetricsEnabled reports whether Collect has anything to return.
func (p *Provider) MetricsEnabled() bool {
	return p != nil && p.meterReader != nil
}

// Collect returns the current values of every counter recorded so far.
func (p *Provider) Collect(ctx context.Context) (map[string]int64, error) {
	if !p.MetricsEnabled() {
		return nil, nil
	}
	var rm metricdata.ResourceMetrics
	if err := p.meterReader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}
	totals := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals, nil
}

// Shutdown flushes and stops the configured providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var err error
	p.shutdownOnce.Do(func() {
		var errs []error
		if p.meterProvider != nil {
			if shutdownErr := p.meterProvider.Shutdown(ctx); shutdownErr != nil {
				errs = append(errs, shutdownErr)
			}
		}
		if p.tracerProvider != nil {
			if shutdownErr := p.tracerProvider.Shutdown(ctx); shutdownErr != nil {
				errs = append(errs, shutdownErr)
			}
		}
		if len(errs) > 0 {
			err = errors.Join(errs...)
		}
	})
	return err
}
