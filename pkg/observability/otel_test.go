package observability

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracingDisabled(t *testing.T) {
	logger, _ := test.NewNullLogger()

	tp, err := InitTracing(context.Background(), TracingConfig{Endpoint: "localhost:4317"}, logger)
	require.NoError(t, err)
	assert.Nil(t, tp)
	assert.NoError(t, ShutdownTracing(context.Background(), tp, logger))
}

func TestTracerProviderRecordsSpans(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sr := tracetest.NewSpanRecorder()
	tp := NewTracerProvider(nil, sdktrace.WithSpanProcessor(sr))

	_, span := tp.Tracer("test").Start(context.Background(), "work")
	span.End()

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, "work", sr.Ended()[0].Name())
	assert.NoError(t, ShutdownTracing(context.Background(), tp, logger))
}

func TestWithTraceContext(t *testing.T) {
	logger, hook := test.NewNullLogger()

	WithTraceContext(context.Background(), logger).Info("untraced")
	require.Len(t, hook.Entries, 1)
	assert.NotContains(t, hook.LastEntry().Data, "trace_id")

	tp := NewTracerProvider(nil, sdktrace.WithSpanProcessor(tracetest.NewSpanRecorder()))
	ctx, span := tp.Tracer("test").Start(context.Background(), "work")
	defer span.End()

	WithTraceContext(ctx, logger).Info("traced")
	assert.Equal(t, logrus.Fields{
		"trace_id": span.SpanContext().TraceID().String(),
		"span_id":  span.SpanContext().SpanID().String(),
	}, hook.LastEntry().Data)
}
