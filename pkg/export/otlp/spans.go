package otlp

import (
	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
)

// ToResourceSpans converts snapshots into OTLP resource spans, grouping by
// instrumentation scope. All snapshots are assumed to share one resource
// (they come from one provider).
func ToResourceSpans(spans []trace.SpanSnapshot) *tracepb.ResourceSpans {
	if len(spans) == 0 {
		return nil
	}
	rs := &tracepb.ResourceSpans{
		Resource: &resourcepb.Resource{Attributes: ToProtoAttributes(spans[0].Resource)},
	}

	byScope := make(map[scope.Scope]*tracepb.ScopeSpans)
	var order []scope.Scope
	for _, span := range spans {
		ss, ok := byScope[span.Scope]
		if !ok {
			ss = &tracepb.ScopeSpans{
				Scope: &commonpb.InstrumentationScope{
					Name:    span.Scope.Name,
					Version: span.Scope.Version,
				},
			}
			byScope[span.Scope] = ss
			order = append(order, span.Scope)
		}
		ss.Spans = append(ss.Spans, toProtoSpan(span))
	}
	for _, sc := range order {
		rs.ScopeSpans = append(rs.ScopeSpans, byScope[sc])
	}
	return rs
}

func toProtoSpan(span trace.SpanSnapshot) *tracepb.Span {
	sc := span.SpanContext
	traceID := sc.TraceID()
	spanID := sc.SpanID()

	out := &tracepb.Span{
		TraceId:                traceID[:],
		SpanId:                 spanID[:],
		TraceState:             sc.TraceState().String(),
		Name:                   span.Name,
		Kind:                   toProtoSpanKind(span.Kind),
		StartTimeUnixNano:      toUnixNano(span.StartTime),
		EndTimeUnixNano:        toUnixNano(span.EndTime),
		Attributes:             ToProtoAttributes(span.Attributes),
		DroppedAttributesCount: uint32(span.DroppedAttributes),
		DroppedEventsCount:     uint32(span.DroppedEvents),
		DroppedLinksCount:      uint32(span.DroppedLinks),
		Status:                 toProtoStatus(span.Status),
	}
	if span.Parent.SpanID().IsValid() {
		parentID := span.Parent.SpanID()
		out.ParentSpanId = parentID[:]
	}
	for _, ev := range span.Events {
		out.Events = append(out.Events, &tracepb.Span_Event{
			TimeUnixNano: toUnixNano(ev.Timestamp),
			Name:         ev.Name,
			Attributes:   ToProtoAttributes(ev.Attributes),
		})
	}
	for _, link := range span.Links {
		linkTraceID := link.SpanContext.TraceID()
		linkSpanID := link.SpanContext.SpanID()
		out.Links = append(out.Links, &tracepb.Span_Link{
			TraceId:    linkTraceID[:],
			SpanId:     linkSpanID[:],
			TraceState: link.SpanContext.TraceState().String(),
			Attributes: ToProtoAttributes(link.Attributes),
		})
	}
	return out
}

// FromResourceSpans converts one OTLP resource-spans payload into model
// snapshots, stamping every span with the payload's resource attributes.
func FromResourceSpans(rs *tracepb.ResourceSpans) []trace.SpanSnapshot {
	if rs == nil {
		return nil
	}
	var resourceAttrs []attribute.KeyValue
	if rs.Resource != nil {
		resourceAttrs = FromProtoAttributes(rs.Resource.Attributes)
	}

	var out []trace.SpanSnapshot
	for _, ss := range rs.ScopeSpans {
		sc := scope.Scope{}
		if ss.Scope != nil {
			sc = scope.Scope{Name: ss.Scope.Name, Version: ss.Scope.Version}
		}
		for _, span := range ss.Spans {
			out = append(out, fromProtoSpan(span, resourceAttrs, sc))
		}
	}
	return out
}

func fromProtoSpan(span *tracepb.Span, resourceAttrs []attribute.KeyValue, sc scope.Scope) trace.SpanSnapshot {
	traceID := trace.TraceIDFromBytes(span.TraceId)
	spanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanIDFromBytes(span.SpanId),
		TraceState: trace.ParseTraceState(span.TraceState),
		Remote:     true,
	})

	var parent trace.SpanContext
	if parentID := trace.SpanIDFromBytes(span.ParentSpanId); parentID.IsValid() {
		parent = trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  parentID,
			Remote:  true,
		})
	}

	snapshot := trace.SpanSnapshot{
		Name:              span.Name,
		Kind:              fromProtoSpanKind(span.Kind),
		SpanContext:       spanContext,
		Parent:            parent,
		StartTime:         fromUnixNano(span.StartTimeUnixNano),
		EndTime:           fromUnixNano(span.EndTimeUnixNano),
		Attributes:        FromProtoAttributes(span.Attributes),
		Status:            fromProtoStatus(span.Status),
		Resource:          resourceAttrs,
		Scope:             sc,
		DroppedAttributes: int(span.DroppedAttributesCount),
		DroppedEvents:     int(span.DroppedEventsCount),
		DroppedLinks:      int(span.DroppedLinksCount),
	}
	for _, ev := range span.Events {
		snapshot.Events = append(snapshot.Events, trace.Event{
			Name:       ev.Name,
			Timestamp:  fromUnixNano(ev.TimeUnixNano),
			Attributes: FromProtoAttributes(ev.Attributes),
		})
	}
	for _, link := range span.Links {
		snapshot.Links = append(snapshot.Links, trace.Link{
			SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    trace.TraceIDFromBytes(link.TraceId),
				SpanID:     trace.SpanIDFromBytes(link.SpanId),
				TraceState: trace.ParseTraceState(link.TraceState),
				Remote:     true,
			}),
			Attributes: FromProtoAttributes(link.Attributes),
		})
	}
	return snapshot
}

func toProtoSpanKind(kind trace.SpanKind) tracepb.Span_SpanKind {
	switch kind {
	case trace.SpanKindServer:
		return tracepb.Span_SPAN_KIND_SERVER
	case trace.SpanKindClient:
		return tracepb.Span_SPAN_KIND_CLIENT
	case trace.SpanKindProducer:
		return tracepb.Span_SPAN_KIND_PRODUCER
	case trace.SpanKindConsumer:
		return tracepb.Span_SPAN_KIND_CONSUMER
	default:
		return tracepb.Span_SPAN_KIND_INTERNAL
	}
}

func fromProtoSpanKind(kind tracepb.Span_SpanKind) trace.SpanKind {
	switch kind {
	case tracepb.Span_SPAN_KIND_SERVER:
		return trace.SpanKindServer
	case tracepb.Span_SPAN_KIND_CLIENT:
		return trace.SpanKindClient
	case tracepb.Span_SPAN_KIND_PRODUCER:
		return trace.SpanKindProducer
	case tracepb.Span_SPAN_KIND_CONSUMER:
		return trace.SpanKindConsumer
	default:
		return trace.SpanKindInternal
	}
}

func toProtoStatus(status trace.Status) *tracepb.Status {
	out := &tracepb.Status{}
	switch status.Code {
	case trace.StatusOk:
		out.Code = tracepb.Status_STATUS_CODE_OK
	case trace.StatusError:
		out.Code = tracepb.Status_STATUS_CODE_ERROR
		out.Message = status.Description
	default:
		out.Code = tracepb.Status_STATUS_CODE_UNSET
	}
	return out
}

func fromProtoStatus(status *tracepb.Status) trace.Status {
	if status == nil {
		return trace.Status{}
	}
	switch status.Code {
	case tracepb.Status_STATUS_CODE_OK:
		return trace.Status{Code: trace.StatusOk}
	case tracepb.Status_STATUS_CODE_ERROR:
		return trace.Status{Code: trace.StatusError, Description: status.Message}
	default:
		return trace.Status{}
	}
}
