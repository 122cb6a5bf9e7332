package appdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestReadAndFlushRecordSpans(t *testing.T) {
	t.Parallel()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	loc := testLocation(t)
	target := writeConfigFile(t, "network.yaml")

	a := mustRead(t, loc, WithTracerProvider(tp))
	require.NoError(t, a.SetConfigPath(target))
	require.NoError(t, a.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "appdata.read", spans[0].Name())
	assert.Equal(t, "appdata.flush", spans[1].Name())
	assert.NotEqual(t, codes.Error, spans[1].Status().Code)
}

func TestCleanCloseRecordsNoFlushSpan(t *testing.T) {
	t.Parallel()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	a := mustRead(t, testLocation(t), WithTracerProvider(tp))
	require.NoError(t, a.Close())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "appdata.read", spans[0].Name())
}

func TestBrokenReadMarksSpanAndCountsError(t *testing.T) {
	t.Parallel()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	loc := testLocation(t)
	writeStorageFile(t, loc, "config_path = [\n")
	logger, _ := quietLogger()

	_, err := Read(context.Background(), loc, WithLogger(logger), WithTracerProvider(tp), WithMeterProvider(mp))
	require.ErrorIs(t, err, ErrBrokenConfig)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	assert.Equal(t, int64(1), counterTotal(t, reader, "appdata.reads_total"))
	assert.Equal(t, int64(1), counterTotal(t, reader, "appdata.errors_total"))
	assert.Equal(t, int64(0), counterTotal(t, reader, "appdata.flushes_total"))
}

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}
