package pipeline

import (
	"testing"
	"time"

	"github.com/lattice-obs/lattice/internal/cache"
	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubTraceCache struct {
	spans map[string][]trace.SpanSnapshot
}

func (c *stubTraceCache) Get(traceID string) ([]trace.SpanSnapshot, error) {
	spans, ok := c.spans[traceID]
	if !ok {
		return nil, cache.ErrKeyNotFound
	}
	return spans, nil
}

func (c *stubTraceCache) Put(traceID string, spans []trace.SpanSnapshot) error {
	c.spans[traceID] = append(c.spans[traceID], spans...)
	return nil
}

func (c *stubTraceCache) SettledTraces(olderThan time.Duration) []string {
	var ids []string
	for id := range c.spans {
		ids = append(ids, id)
	}
	return ids
}

func (c *stubTraceCache) Evict(traceID string) {
	delete(c.spans, traceID)
}

func makeSettledTrace(t *testing.T) (string, []trace.SpanSnapshot) {
	t.Helper()
	gen := trace.NewRandomIDGenerator()
	traceID := gen.NewTraceID()
	rootID := gen.NewSpanID()
	childID := gen.NewSpanID()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resource := []attribute.KeyValue{attribute.String("service.name", "checkout")}

	root := trace.SpanSnapshot{
		Name: "POST /checkout",
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  rootID,
		}),
		StartTime: start,
		EndTime:   start.Add(300 * time.Millisecond),
		Resource:  resource,
	}
	child := trace.SpanSnapshot{
		Name: "charge card",
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  childID,
		}),
		Parent: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  rootID,
		}),
		StartTime: start.Add(50 * time.Millisecond),
		EndTime:   start.Add(400 * time.Millisecond),
		Status:    trace.Status{Code: trace.StatusError, Description: "card declined"},
		Resource:  resource,
	}
	return traceID.String(), []trace.SpanSnapshot{child, root}
}

func TestTraceCompletionService_Summarize(t *testing.T) {
	t.Run("A settled trace rolls up into a summary document", func(t *testing.T) {
		traceID, spans := makeSettledTrace(t)
		traceCache := &stubTraceCache{spans: map[string][]trace.SpanSnapshot{traceID: spans}}
		service := NewTraceCompletionService(traceCache, nil, time.Second, time.Second, zaptest.NewLogger(t))

		summary, err := service.Summarize(traceID)
		require.Nil(t, err)

		assert.Equal(t, traceID, summary.TraceID)
		assert.Equal(t, 2, summary.SpanCount)
		assert.Equal(t, 1, summary.ErrorCount)
		assert.Equal(t, "POST /checkout", summary.RootName)
		assert.Equal(t, "checkout", summary.RootService)
		// the window spans the earliest start to the latest end across all spans
		assert.Equal(t, spans[1].StartTime, summary.StartTime)
		assert.Equal(t, spans[0].EndTime, summary.EndTime)
		assert.Equal(t, (400 * time.Millisecond).Nanoseconds(), summary.DurationNanos)
	})

	t.Run("An unknown trace id is an error", func(t *testing.T) {
		traceCache := &stubTraceCache{spans: map[string][]trace.SpanSnapshot{}}
		service := NewTraceCompletionService(traceCache, nil, time.Second, time.Second, zaptest.NewLogger(t))

		_, err := service.Summarize("missing")
		assert.ErrorIs(t, err, cache.ErrKeyNotFound)
	})
}
