package trace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const DefaultExportQueueSize = 512

var ErrExporterShutdown = errors.New("exporter has been shut down")

// BufferedSpanProcessor queues ended spans and hands them to a SpanExporter
// when the queue fills, on ForceFlush, and on Shutdown.
type BufferedSpanProcessor struct {
	exporter  SpanExporter
	queueSize int
	logger    *zap.Logger

	mu       sync.Mutex
	queue    []SpanSnapshot
	shutdown bool
}

func NewBufferedSpanProcessor(exporter SpanExporter, queueSize int, logger *zap.Logger) *BufferedSpanProcessor {
	if queueSize <= 0 {
		queueSize = DefaultExportQueueSize
	}
	return &BufferedSpanProcessor{
		exporter:  exporter,
		queueSize: queueSize,
		logger:    logger,
		queue:     make([]SpanSnapshot, 0, queueSize),
	}
}

func (p *BufferedSpanProcessor) OnStart(*Span) {}

func (p *BufferedSpanProcessor) OnEnd(snapshot SpanSnapshot) {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, snapshot)
	full := len(p.queue) >= p.queueSize
	p.mu.Unlock()

	if full {
		if err := p.flush(context.Background()); err != nil {
			p.logger.Error("Failed to flush span export queue", zap.Error(err))
		}
	}
}

func (p *BufferedSpanProcessor) ForceFlush(ctx context.Context) error {
	return p.flush(ctx)
}

func (p *BufferedSpanProcessor) Shutdown(ctx context.Context) error {
	err := p.flush(ctx)
	p.mu.Lock()
	p.shutdown = true
	p.mu.Unlock()
	if shutdownErr := p.exporter.Shutdown(ctx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

func (p *BufferedSpanProcessor) flush(ctx context.Context) error {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return nil
	}
	batch := p.queue
	p.queue = make([]SpanSnapshot, 0, p.queueSize)
	p.mu.Unlock()

	if err := p.exporter.ExportSpans(ctx, batch); err != nil {
		return fmt.Errorf("error exporting %d spans: %w", len(batch), err)
	}
	return nil
}
