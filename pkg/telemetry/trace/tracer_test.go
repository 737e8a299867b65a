package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracer_Start(t *testing.T) {
	t.Run("A root span gets a fresh sampled trace", func(t *testing.T) {
		provider, _ := newTestProvider()
		tracer := provider.Tracer("test")

		_, span := tracer.Start(context.Background(), "root")

		sc := span.SpanContext()
		assert.True(t, sc.TraceID().IsValid())
		assert.True(t, sc.SpanID().IsValid())
		assert.True(t, sc.TraceFlags().IsSampled())
		assert.False(t, span.Parent().IsValid())
	})

	t.Run("A child span joins the parent's trace", func(t *testing.T) {
		provider, _ := newTestProvider()
		tracer := provider.Tracer("test")

		ctx, parent := tracer.Start(context.Background(), "parent")
		_, child := tracer.Start(ctx, "child")

		assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
		assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID())
		assert.NotEqual(t, parent.SpanContext().SpanID(), child.SpanContext().SpanID())
	})

	t.Run("WithNewRoot detaches the span from the surrounding trace", func(t *testing.T) {
		provider, _ := newTestProvider()
		tracer := provider.Tracer("test")

		ctx, parent := tracer.Start(context.Background(), "parent")
		_, detached := tracer.Start(ctx, "detached", WithNewRoot())

		assert.NotEqual(t, parent.SpanContext().TraceID(), detached.SpanContext().TraceID())
		assert.False(t, detached.Parent().IsValid())
	})

	t.Run("A remote span context makes the next span its child", func(t *testing.T) {
		provider, _ := newTestProvider()
		tracer := provider.Tracer("test")

		traceID, err := TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		assert.Nil(t, err)
		spanID, err := SpanIDFromHex("0102030405060708")
		assert.Nil(t, err)
		remote := NewSpanContext(SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: FlagsSampled,
		})

		ctx := ContextWithRemoteSpanContext(context.Background(), remote)
		_, span := tracer.Start(ctx, "server handler")

		assert.Equal(t, traceID, span.SpanContext().TraceID())
		assert.Equal(t, spanID, span.Parent().SpanID())
		assert.True(t, span.Parent().IsRemote())
	})

	t.Run("Trace state is inherited by child spans", func(t *testing.T) {
		provider, _ := newTestProvider()
		tracer := provider.Tracer("test")

		traceID, _ := TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		spanID, _ := SpanIDFromHex("0102030405060708")
		remote := NewSpanContext(SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceState: ParseTraceState("vendor=value"),
		})

		ctx := ContextWithRemoteSpanContext(context.Background(), remote)
		_, span := tracer.Start(ctx, "child")

		assert.Equal(t, "value", span.SpanContext().TraceState().Get("vendor"))
	})

	t.Run("The same scope always yields the same tracer", func(t *testing.T) {
		provider, _ := newTestProvider()
		assert.Same(t, provider.Tracer("svc", "1.0"), provider.Tracer("svc", "1.0"))
		assert.NotSame(t, provider.Tracer("svc", "1.0"), provider.Tracer("svc", "2.0"))
	})

	t.Run("Snapshots carry the tracer's scope and provider resource", func(t *testing.T) {
		provider, recorder := newTestProvider()
		tracer := provider.Tracer("ingest", "0.3.0")

		_, span := tracer.Start(context.Background(), "operation")
		span.End()

		ended := recorder.Ended()
		assert.Equal(t, "ingest", ended[0].Scope.Name)
		assert.Equal(t, "0.3.0", ended[0].Scope.Version)
	})
}
