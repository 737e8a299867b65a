package log

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const DefaultExportQueueSize = 512

// LogProcessor hooks record emission.
type LogProcessor interface {
	OnEmit(record Record)
	ForceFlush(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// LogExporter serializes and transmits log records to a backend.
type LogExporter interface {
	ExportLogs(ctx context.Context, records []Record) error
	Shutdown(ctx context.Context) error
}

// BufferedLogProcessor queues records and hands them to a LogExporter when
// the queue fills, on ForceFlush, and on Shutdown.
type BufferedLogProcessor struct {
	exporter  LogExporter
	queueSize int
	logger    *zap.Logger

	mu       sync.Mutex
	queue    []Record
	shutdown bool
}

func NewBufferedLogProcessor(exporter LogExporter, queueSize int, logger *zap.Logger) *BufferedLogProcessor {
	if queueSize <= 0 {
		queueSize = DefaultExportQueueSize
	}
	return &BufferedLogProcessor{
		exporter:  exporter,
		queueSize: queueSize,
		logger:    logger,
		queue:     make([]Record, 0, queueSize),
	}
}

func (p *BufferedLogProcessor) OnEmit(record Record) {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.queue = append(p.queue, record)
	full := len(p.queue) >= p.queueSize
	p.mu.Unlock()

	if full {
		if err := p.flush(context.Background()); err != nil {
			p.logger.Error("Failed to flush log export queue", zap.Error(err))
		}
	}
}

func (p *BufferedLogProcessor) ForceFlush(ctx context.Context) error {
	return p.flush(ctx)
}

func (p *BufferedLogProcessor) Shutdown(ctx context.Context) error {
	err := p.flush(ctx)
	p.mu.Lock()
	p.shutdown = true
	p.mu.Unlock()
	if shutdownErr := p.exporter.Shutdown(ctx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

func (p *BufferedLogProcessor) flush(ctx context.Context) error {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return nil
	}
	batch := p.queue
	p.queue = make([]Record, 0, p.queueSize)
	p.mu.Unlock()

	if err := p.exporter.ExportLogs(ctx, batch); err != nil {
		return fmt.Errorf("error exporting %d log records: %w", len(batch), err)
	}
	return nil
}

// RecordCollector is an in-memory LogProcessor for tests.
type RecordCollector struct {
	mu      sync.Mutex
	records []Record
}

func NewRecordCollector() *RecordCollector {
	return &RecordCollector{}
}

func (c *RecordCollector) OnEmit(record Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
}

func (c *RecordCollector) ForceFlush(context.Context) error {
	return nil
}

func (c *RecordCollector) Shutdown(context.Context) error {
	return nil
}

func (c *RecordCollector) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}
