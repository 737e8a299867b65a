package metric

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MetricExporter serializes and transmits one collection cycle's output to
// a backend.
type MetricExporter interface {
	Export(ctx context.Context, rm ResourceMetrics) error
	Shutdown(ctx context.Context) error
}

// ManualReader exposes collection cycles to the caller: each Collect is
// one export cycle, polling every observable callback exactly once.
type ManualReader struct {
	provider *MeterProvider
}

func NewManualReader(provider *MeterProvider) *ManualReader {
	return &ManualReader{provider: provider}
}

func (r *ManualReader) Collect(ctx context.Context) (ResourceMetrics, error) {
	return r.provider.Collect(ctx)
}

// PeriodicReader drives collection on a fixed interval and pushes each
// cycle's output to an exporter.
type PeriodicReader struct {
	provider *MeterProvider
	exporter MetricExporter
	interval time.Duration
	logger   *zap.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	stopped   chan struct{}

	mu      sync.Mutex
	started bool
}

func NewPeriodicReader(
	provider *MeterProvider,
	exporter MetricExporter,
	interval time.Duration,
	logger *zap.Logger,
) *PeriodicReader {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &PeriodicReader{
		provider: provider,
		exporter: exporter,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the collection loop. It returns immediately and is a
// no-op after the first call.
func (r *PeriodicReader) Start() {
	r.startOnce.Do(func() {
		r.mu.Lock()
		r.started = true
		r.mu.Unlock()
		go func() {
			defer close(r.stopped)
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					r.exportCycle(context.Background())
				case <-r.done:
					return
				}
			}
		}()
	})
}

// Shutdown stops the loop, runs one final cycle and shuts the exporter
// down. Safe to call whether or not Start ever ran.
func (r *PeriodicReader) Shutdown(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.done)
	})
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if started {
		<-r.stopped
	}
	r.exportCycle(ctx)
	return r.exporter.Shutdown(ctx)
}

func (r *PeriodicReader) exportCycle(ctx context.Context) {
	rm, err := r.provider.Collect(ctx)
	if err != nil {
		r.logger.Error("Failed to collect metrics", zap.Error(err))
		return
	}
	if len(rm.ScopeMetrics) == 0 {
		return
	}
	if err := r.exporter.Export(ctx, rm); err != nil {
		r.logger.Error("Failed to export metrics", zap.Error(err))
	}
}
