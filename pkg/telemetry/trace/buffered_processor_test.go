package trace

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type captureExporter struct {
	mu       sync.Mutex
	batches  [][]SpanSnapshot
	shutdown bool
}

func (e *captureExporter) ExportSpans(ctx context.Context, spans []SpanSnapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return ErrExporterShutdown
	}
	batch := make([]SpanSnapshot, len(spans))
	copy(batch, spans)
	e.batches = append(e.batches, batch)
	return nil
}

func (e *captureExporter) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
	return nil
}

func (e *captureExporter) exported() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int
	for _, b := range e.batches {
		n += len(b)
	}
	return n
}

func TestBufferedSpanProcessor(t *testing.T) {
	snapshot := SpanSnapshot{Name: "operation"}

	t.Run("Queues spans until the queue fills", func(t *testing.T) {
		exporter := &captureExporter{}
		processor := NewBufferedSpanProcessor(exporter, 3, zaptest.NewLogger(t))

		processor.OnEnd(snapshot)
		processor.OnEnd(snapshot)
		assert.Equal(t, 0, exporter.exported())

		processor.OnEnd(snapshot)
		assert.Equal(t, 3, exporter.exported())
	})

	t.Run("ForceFlush drains a partial queue", func(t *testing.T) {
		exporter := &captureExporter{}
		processor := NewBufferedSpanProcessor(exporter, 100, zaptest.NewLogger(t))

		processor.OnEnd(snapshot)
		assert.Nil(t, processor.ForceFlush(context.Background()))
		assert.Equal(t, 1, exporter.exported())
	})

	t.Run("Shutdown flushes, stops the exporter and drops later spans", func(t *testing.T) {
		exporter := &captureExporter{}
		processor := NewBufferedSpanProcessor(exporter, 100, zaptest.NewLogger(t))

		processor.OnEnd(snapshot)
		assert.Nil(t, processor.Shutdown(context.Background()))
		assert.Equal(t, 1, exporter.exported())
		assert.True(t, exporter.shutdown)

		processor.OnEnd(snapshot)
		assert.Nil(t, processor.ForceFlush(context.Background()))
		assert.Equal(t, 1, exporter.exported())
	})
}
