package handler

import (
	"github.com/lattice-obs/lattice/internal/storage/model"
	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
)

func traceToDTO(t trace.Trace) TraceDTO {
	dto := TraceDTO{TraceID: t.TraceID.String()}
	for _, root := range t.Roots {
		dto.Roots = append(dto.Roots, treeNodeToDTO(root))
	}
	return dto
}

func treeNodeToDTO(node *trace.TreeNode) SpanNodeDTO {
	span := node.Span
	dto := SpanNodeDTO{
		SpanID:        span.SpanContext.SpanID().String(),
		ServiceName:   model.ServiceNameFromResource(span.Resource),
		Name:          span.Name,
		Kind:          span.Kind.String(),
		StartTime:     span.StartTime,
		EndTime:       span.EndTime,
		DurationNanos: span.Duration().Nanoseconds(),
		StatusCode:    span.Status.Code.String(),
		StatusMessage: span.Status.Description,
		Attributes:    attributesToMap(span.Attributes),
	}
	if span.Parent.SpanID().IsValid() {
		dto.ParentSpanID = span.Parent.SpanID().String()
	}
	for _, link := range span.Links {
		dto.Links = append(dto.Links, SpanLinkDTO{
			TraceID:    link.SpanContext.TraceID().String(),
			SpanID:     link.SpanContext.SpanID().String(),
			Attributes: attributesToMap(link.Attributes),
		})
	}
	for _, child := range node.Children {
		dto.Children = append(dto.Children, treeNodeToDTO(child))
	}
	return dto
}

func attributesToMap(kvs []attribute.KeyValue) map[string]interface{} {
	if len(kvs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}
