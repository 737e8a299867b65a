package trace

import "context"

type spanContextKeyType struct{}

var spanContextKey spanContextKeyType

// ContextWithSpan embeds the span in the context so child spans started
// from it inherit the trace.
func ContextWithSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, spanContextKey, span)
}

// SpanFromContext returns the span carried by the context, nil if none.
func SpanFromContext(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanContextKey).(*Span)
	return span
}

// ContextWithRemoteSpanContext embeds a propagated span context (for
// example one decoded from incoming request headers) so the next span
// started becomes its child.
func ContextWithRemoteSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanContextKey, &Span{
		spanContext: sc.WithRemote(true),
		ended:       true,
	})
}

// SpanContextFromContext returns the span context carried by the context,
// the zero value if none.
func SpanContextFromContext(ctx context.Context) SpanContext {
	if span := SpanFromContext(ctx); span != nil {
		return span.SpanContext()
	}
	return SpanContext{}
}
