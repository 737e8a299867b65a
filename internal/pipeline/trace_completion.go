package pipeline

import (
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/lattice-obs/lattice/internal/cache"
	"github.com/lattice-obs/lattice/internal/storage/model"
	"github.com/lattice-obs/lattice/internal/storage/write_buffer"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"go.uber.org/zap"
)

const traceCompletedTopic = "trace_completed"

// TraceCompletionOutput is the event published once a trace has settled.
type TraceCompletionOutput struct {
	Summary model.TraceSummaryDocument
}

// TraceCompletionService periodically sweeps the trace cache for traces
// that have stopped receiving spans, rolls each one up into a summary and
// publishes the result for persistence.
type TraceCompletionService struct {
	traceCache    cache.TraceCache
	summaryBuffer write_buffer.WriteBuffer[model.TraceSummaryDocument]
	settleAfter   time.Duration
	sweepInterval time.Duration
	logger        *zap.Logger
}

func NewTraceCompletionService(
	traceCache cache.TraceCache,
	summaryBuffer write_buffer.WriteBuffer[model.TraceSummaryDocument],
	settleAfter time.Duration,
	sweepInterval time.Duration,
	logger *zap.Logger,
) *TraceCompletionService {
	return &TraceCompletionService{
		traceCache:    traceCache,
		summaryBuffer: summaryBuffer,
		settleAfter:   settleAfter,
		sweepInterval: sweepInterval,
		logger:        logger,
	}
}

// Start subscribes the persistence stage and begins the sweep loop. The
// returned function stops the loop.
func (tc *TraceCompletionService) Start(eventBus EventBus.Bus) (func(), error) {
	bus := NewTopicBus[TraceCompletionOutput](eventBus, tc.logger)

	err := bus.Subscribe(
		traceCompletedTopic,
		func(event TraceCompletionOutput) error {
			tc.summaryBuffer.WriteToBuffer([]model.TraceSummaryDocument{event.Summary})
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to trace completion topic: %w", err)
	}

	ticker := time.NewTicker(tc.sweepInterval)
	go func() {
		for range ticker.C {
			for _, traceID := range tc.traceCache.SettledTraces(tc.settleAfter) {
				summary, err := tc.Summarize(traceID)
				if err != nil {
					tc.logger.Error("Failed to summarize settled trace",
						zap.String("trace_id", traceID),
						zap.Error(err),
					)
					tc.traceCache.Evict(traceID)
					continue
				}
				bus.Publish(traceCompletedTopic, TraceCompletionOutput{Summary: summary})
				tc.traceCache.Evict(traceID)
			}
		}
	}()

	return ticker.Stop, nil
}

// Summarize assembles the cached spans of one trace into a tree and rolls
// it up into a summary document.
func (tc *TraceCompletionService) Summarize(traceID string) (model.TraceSummaryDocument, error) {
	spans, err := tc.traceCache.Get(traceID)
	if err != nil {
		return model.TraceSummaryDocument{}, fmt.Errorf("failed to get spans for trace %s: %w", traceID, err)
	}
	tree := trace.BuildTrace(spans)

	summary := model.TraceSummaryDocument{
		CreatedAt:  time.Now().UTC(),
		TraceID:    traceID,
		SpanCount:  len(tree.Spans),
		ErrorCount: tree.ErrorCount(),
	}
	if root := tree.Root(); root != nil {
		summary.RootName = root.Span.Name
		summary.RootService = model.ServiceNameFromResource(root.Span.Resource)
	}
	for i, span := range tree.Spans {
		if i == 0 || span.StartTime.Before(summary.StartTime) {
			summary.StartTime = span.StartTime
		}
		if span.EndTime.After(summary.EndTime) {
			summary.EndTime = span.EndTime
		}
	}
	summary.DurationNanos = summary.EndTime.Sub(summary.StartTime).Nanoseconds()
	return summary, nil
}
