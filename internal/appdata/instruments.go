package appdata

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/canzero/canzero-appdata/internal/appdata"

const (
	opRead  = "read"
	opFlush = "flush"
)

// instruments publishes spans and counters for store I/O. Providers default
// to the otel globals, which are no-ops until telemetry is set up.
type instruments struct {
	tracer trace.Tracer

	counterReads   metric.Int64Counter
	counterFlushes metric.Int64Counter
	counterErrors  metric.Int64Counter
}

func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider) *instruments {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	inst := &instruments{tracer: tp.Tracer(instrumentationName)}
	inst.counterReads, _ = meter.Int64Counter(
		"appdata.reads_total",
		metric.WithDescription("Number of appdata loads from disk"),
	)
	inst.counterFlushes, _ = meter.Int64Counter(
		"appdata.flushes_total",
		metric.WithDescription("Number of appdata write-backs"),
	)
	inst.counterErrors, _ = meter.Int64Counter(
		"appdata.errors_total",
		metric.WithDescription("Number of appdata operations that ended in error"),
	)
	return inst
}

func (i *instruments) start(ctx context.Context, op string, loc Location) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, "appdata."+op, trace.WithAttributes(
		attribute.String("appdata.file", loc.File),
	))
}

func (i *instruments) finish(ctx context.Context, span trace.Span, op string, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))
	switch op {
	case opRead:
		if i.counterReads != nil {
			i.counterReads.Add(ctx, 1, attrs)
		}
	case opFlush:
		if i.counterFlushes != nil {
			i.counterFlushes.Add(ctx, 1, attrs)
		}
	}
	if err != nil {
		if i.counterErrors != nil {
			i.counterErrors.Add(ctx, 1, attrs)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
