package trace

import (
	"context"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
)

// Tracer creates spans within a single instrumentation scope. Obtain one
// from TracerProvider.Tracer.
type Tracer struct {
	provider *TracerProvider
	scope    scope.Scope
}

// Start begins a span named name and returns it embedded in a derived
// context. If the context carries a span (and WithNewRoot was not given)
// the new span joins that trace as a child; otherwise it becomes the root
// of a fresh trace.
func (t *Tracer) Start(ctx context.Context, name string, opts ...SpanStartOption) (context.Context, *Span) {
	cfg := newSpanConfig(opts)

	var parent SpanContext
	if !cfg.newRoot {
		parent = SpanContextFromContext(ctx)
	}

	var traceID TraceID
	var traceState TraceState
	var flags TraceFlags
	if parent.TraceID().IsValid() {
		traceID = parent.TraceID()
		traceState = parent.TraceState()
		flags = parent.TraceFlags()
	} else {
		traceID = t.provider.idGen.NewTraceID()
		flags = FlagsSampled
		parent = SpanContext{}
	}

	sc := NewSpanContext(SpanContextConfig{
		TraceID:    traceID,
		SpanID:     t.provider.idGen.NewSpanID(),
		TraceFlags: flags,
		TraceState: traceState,
	})

	startTime := cfg.timestamp
	if startTime.IsZero() {
		startTime = time.Now()
	}

	span := &Span{
		name:        name,
		kind:        cfg.kind,
		spanContext: sc,
		parent:      parent,
		startTime:   startTime,
		tracer:      t,
	}
	span.SetAttributes(cfg.attributes...)
	for _, link := range cfg.links {
		span.AddLink(link)
	}

	t.provider.onStart(span)

	return ContextWithSpan(ctx, span), span
}
