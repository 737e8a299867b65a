package otlp

import (
	"testing"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
)

func makeSnapshot(t *testing.T) trace.SpanSnapshot {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.Nil(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.Nil(t, err)
	parentID, err := trace.SpanIDFromHex("1112131415161718")
	require.Nil(t, err)

	start := time.Unix(0, 1700000000000000000)
	return trace.SpanSnapshot{
		Name: "GET /orders",
		Kind: trace.SpanKindServer,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceState: trace.ParseTraceState("vendor=abc"),
		}),
		Parent: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  parentID,
		}),
		StartTime: start,
		EndTime:   start.Add(250 * time.Millisecond),
		Attributes: []attribute.KeyValue{
			attribute.String("http.method", "GET"),
			attribute.Int("http.status_code", 500),
		},
		Events: []trace.Event{{
			Name:       "exception",
			Timestamp:  start.Add(100 * time.Millisecond),
			Attributes: []attribute.KeyValue{attribute.String("exception.message", "boom")},
		}},
		Status:   trace.Status{Code: trace.StatusError, Description: "upstream failure"},
		Resource: []attribute.KeyValue{attribute.String("service.name", "orders")},
		Scope:    scope.Scope{Name: "orders/http", Version: "0.3.0"},
	}
}

func TestResourceSpans_RoundTrip(t *testing.T) {
	t.Run("A snapshot survives conversion to the wire form and back", func(t *testing.T) {
		original := makeSnapshot(t)

		rs := ToResourceSpans([]trace.SpanSnapshot{original})
		require.NotNil(t, rs)
		back := FromResourceSpans(rs)
		require.Len(t, back, 1)

		got := back[0]
		assert.Equal(t, original.Name, got.Name)
		assert.Equal(t, original.Kind, got.Kind)
		assert.Equal(t, original.SpanContext.TraceID(), got.SpanContext.TraceID())
		assert.Equal(t, original.SpanContext.SpanID(), got.SpanContext.SpanID())
		assert.Equal(t, "vendor=abc", got.SpanContext.TraceState().String())
		assert.True(t, got.SpanContext.IsRemote())
		assert.Equal(t, original.Parent.SpanID(), got.Parent.SpanID())
		assert.True(t, original.StartTime.Equal(got.StartTime))
		assert.True(t, original.EndTime.Equal(got.EndTime))
		assert.Equal(t, original.Attributes, got.Attributes)
		assert.Equal(t, original.Status, got.Status)
		assert.Equal(t, original.Resource, got.Resource)
		assert.Equal(t, original.Scope, got.Scope)

		require.Len(t, got.Events, 1)
		assert.Equal(t, "exception", got.Events[0].Name)
		assert.Equal(t, original.Events[0].Attributes, got.Events[0].Attributes)
	})

	t.Run("Spans are grouped by instrumentation scope", func(t *testing.T) {
		a := makeSnapshot(t)
		b := makeSnapshot(t)
		b.Scope = scope.Scope{Name: "orders/db"}

		rs := ToResourceSpans([]trace.SpanSnapshot{a, b, a})
		require.Len(t, rs.ScopeSpans, 2)
		assert.Len(t, rs.ScopeSpans[0].Spans, 2)
		assert.Len(t, rs.ScopeSpans[1].Spans, 1)
		assert.Equal(t, "orders/db", rs.ScopeSpans[1].Scope.Name)
	})

	t.Run("Root spans carry no parent id on the wire", func(t *testing.T) {
		root := makeSnapshot(t)
		root.Parent = trace.SpanContext{}

		rs := ToResourceSpans([]trace.SpanSnapshot{root})
		require.Len(t, rs.ScopeSpans, 1)
		assert.Empty(t, rs.ScopeSpans[0].Spans[0].ParentSpanId)

		back := FromResourceSpans(rs)
		assert.False(t, back[0].Parent.SpanID().IsValid())
	})

	t.Run("Empty input converts to nil", func(t *testing.T) {
		assert.Nil(t, ToResourceSpans(nil))
		assert.Nil(t, FromResourceSpans(nil))
	})
}

func TestStatusConversion(t *testing.T) {
	t.Run("Error status keeps its message, Ok drops it", func(t *testing.T) {
		errStatus := toProtoStatus(trace.Status{Code: trace.StatusError, Description: "bad"})
		assert.Equal(t, tracepb.Status_STATUS_CODE_ERROR, errStatus.Code)
		assert.Equal(t, "bad", errStatus.Message)

		okStatus := toProtoStatus(trace.Status{Code: trace.StatusOk, Description: "ignored"})
		assert.Equal(t, tracepb.Status_STATUS_CODE_OK, okStatus.Code)
		assert.Empty(t, okStatus.Message)
	})
}

func TestAttributeConversion(t *testing.T) {
	t.Run("Every value type round-trips", func(t *testing.T) {
		in := []attribute.KeyValue{
			attribute.String("s", "v"),
			attribute.Bool("b", true),
			attribute.Int64("i", 42),
			attribute.Float64("f", 2.5),
			attribute.StringSlice("ss", []string{"a", "b"}),
			attribute.Int64Slice("is", []int64{1, 2}),
			attribute.Float64Slice("fs", []float64{0.5}),
			attribute.BoolSlice("bs", []bool{true, false}),
		}
		assert.Equal(t, in, FromProtoAttributes(ToProtoAttributes(in)))
	})
}
