package model

import (
	"testing"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFromSpanDocument(t *testing.T) {
	t.Run("Links survive the round trip through the persisted form", func(t *testing.T) {
		traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		require.Nil(t, err)
		spanID, err := trace.SpanIDFromHex("0102030405060708")
		require.Nil(t, err)
		linkedTraceID, err := trace.TraceIDFromHex("f0e0d0c0b0a090807060504030201000")
		require.Nil(t, err)
		linkedSpanID, err := trace.SpanIDFromHex("f0e0d0c0b0a09080")
		require.Nil(t, err)

		start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		original := trace.SpanSnapshot{
			Name: "consume message",
			Kind: trace.SpanKindConsumer,
			SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
				TraceID: traceID,
				SpanID:  spanID,
			}),
			StartTime: start,
			EndTime:   start.Add(time.Millisecond),
			Links: []trace.Link{{
				SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
					TraceID: linkedTraceID,
					SpanID:  linkedSpanID,
				}),
				Attributes: []attribute.KeyValue{attribute.String("messaging.system", "kafka")},
			}},
		}

		doc := SpanDocumentFromSnapshot(original, "consumer")
		require.Len(t, doc.Links, 1)

		rebuilt, err := SnapshotFromSpanDocument(doc)
		require.Nil(t, err)
		require.Len(t, rebuilt.Links, 1)
		assert.Equal(t, linkedTraceID, rebuilt.Links[0].SpanContext.TraceID())
		assert.Equal(t, linkedSpanID, rebuilt.Links[0].SpanContext.SpanID())
		assert.Equal(t, original.Links[0].Attributes, rebuilt.Links[0].Attributes)
	})

	t.Run("A malformed link id fails the rebuild", func(t *testing.T) {
		doc := SpanDocument{
			TraceID: "0102030405060708090a0b0c0d0e0f10",
			SpanID:  "0102030405060708",
			Links:   []SpanLinkDocument{{TraceID: "bogus", SpanID: "0102030405060708"}},
		}
		_, err := SnapshotFromSpanDocument(doc)
		assert.NotNil(t, err)
	})
}
