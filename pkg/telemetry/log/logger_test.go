package log

import (
	"context"
	"testing"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/resource"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Emit(t *testing.T) {
	t.Run("Records are stamped with resource, scope and timestamps", func(t *testing.T) {
		collector := NewRecordCollector()
		provider := NewLoggerProvider(
			WithResource(resource.New("checkout")),
			WithLogProcessor(collector),
		)
		logger := provider.Logger("payments", "1.2.0")

		logger.Emit(context.Background(), Record{
			Severity: SeverityInfo,
			Body:     "charge accepted",
		})

		records := collector.Records()
		require.Len(t, records, 1)
		record := records[0]
		assert.Equal(t, "charge accepted", record.Body)
		assert.Equal(t, "INFO", record.SeverityText)
		assert.Equal(t, "payments", record.Scope.Name)
		assert.Equal(t, "1.2.0", record.Scope.Version)
		assert.Equal(t, []attribute.KeyValue{attribute.String("service.name", "checkout")}, record.Resource)
		assert.False(t, record.ObservedTimestamp.IsZero())
		assert.Equal(t, record.ObservedTimestamp, record.Timestamp)
	})

	t.Run("An explicit timestamp and severity text are preserved", func(t *testing.T) {
		collector := NewRecordCollector()
		provider := NewLoggerProvider(WithLogProcessor(collector))

		ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		provider.Logger("payments").Emit(context.Background(), Record{
			Timestamp:    ts,
			Severity:     SeverityError,
			SeverityText: "SEVERE",
			Body:         "charge declined",
		})

		record := collector.Records()[0]
		assert.Equal(t, ts, record.Timestamp)
		assert.Equal(t, "SEVERE", record.SeverityText)
		assert.NotEqual(t, ts, record.ObservedTimestamp)
	})

	t.Run("Trace and span ids are captured from the context", func(t *testing.T) {
		collector := NewRecordCollector()
		provider := NewLoggerProvider(WithLogProcessor(collector))

		traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		require.Nil(t, err)
		spanID, err := trace.SpanIDFromHex("0102030405060708")
		require.Nil(t, err)
		ctx := trace.ContextWithRemoteSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))

		provider.Logger("payments").Emit(ctx, Record{Body: "within a span"})

		record := collector.Records()[0]
		assert.Equal(t, traceID, record.TraceID)
		assert.Equal(t, spanID, record.SpanID)
	})

	t.Run("Records without a span carry zero ids", func(t *testing.T) {
		collector := NewRecordCollector()
		provider := NewLoggerProvider(WithLogProcessor(collector))

		provider.Logger("payments").Emit(context.Background(), Record{Body: "no span"})

		record := collector.Records()[0]
		assert.False(t, record.TraceID.IsValid())
		assert.False(t, record.SpanID.IsValid())
	})

	t.Run("Loggers are memoized per scope", func(t *testing.T) {
		provider := NewLoggerProvider()
		assert.Same(t, provider.Logger("payments"), provider.Logger("payments"))
		assert.NotSame(t, provider.Logger("payments"), provider.Logger("payments", "2.0.0"))
	})

	t.Run("Records emitted after shutdown are dropped", func(t *testing.T) {
		collector := NewRecordCollector()
		provider := NewLoggerProvider(WithLogProcessor(collector))
		logger := provider.Logger("payments")

		require.Nil(t, provider.Shutdown(context.Background()))
		logger.Emit(context.Background(), Record{Body: "too late"})

		assert.Empty(t, collector.Records())
	})
}

func TestSeverity_String(t *testing.T) {
	t.Run("Intermediate levels map to the nearest named level below", func(t *testing.T) {
		assert.Equal(t, "INFO", SeverityInfo.String())
		assert.Equal(t, "INFO", (SeverityInfo + 2).String())
		assert.Equal(t, "WARN", SeverityWarn.String())
		assert.Equal(t, "FATAL", (SeverityFatal + 3).String())
		assert.Equal(t, "UNDEFINED", SeverityUndefined.String())
	})
}
