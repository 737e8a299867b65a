package handler

import (
	"time"

	"github.com/lattice-obs/lattice/internal/storage/model"
)

type SpanSearchResponseDTO struct {
	Spans []SpanDTO `json:"spans"`
}

type TraceSummarySearchResponseDTO struct {
	Traces []TraceSummaryDTO `json:"traces"`
}

type SpanDTO struct {
	Id            string                 `json:"id"`
	TraceID       string                 `json:"trace_id"`
	SpanID        string                 `json:"span_id"`
	ParentSpanID  string                 `json:"parent_span_id,omitempty"`
	ServiceName   string                 `json:"service_name"`
	Name          string                 `json:"name"`
	Kind          string                 `json:"kind"`
	StartTime     time.Time              `json:"start_time"`
	EndTime       time.Time              `json:"end_time"`
	DurationNanos int64                  `json:"duration_nanos"`
	StatusCode    string                 `json:"status_code"`
	StatusMessage string                 `json:"status_message,omitempty"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
}

type TraceSummaryDTO struct {
	TraceID       string    `json:"trace_id"`
	RootName      string    `json:"root_name,omitempty"`
	RootService   string    `json:"root_service,omitempty"`
	SpanCount     int       `json:"span_count"`
	ErrorCount    int       `json:"error_count"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationNanos int64     `json:"duration_nanos"`
}

// TraceDTO is the assembled tree of one trace.
type TraceDTO struct {
	TraceID string        `json:"trace_id"`
	Roots   []SpanNodeDTO `json:"roots"`
}

type SpanNodeDTO struct {
	SpanID        string                 `json:"span_id"`
	ParentSpanID  string                 `json:"parent_span_id,omitempty"`
	ServiceName   string                 `json:"service_name,omitempty"`
	Name          string                 `json:"name"`
	Kind          string                 `json:"kind"`
	StartTime     time.Time              `json:"start_time"`
	EndTime       time.Time              `json:"end_time"`
	DurationNanos int64                  `json:"duration_nanos"`
	StatusCode    string                 `json:"status_code"`
	StatusMessage string                 `json:"status_message,omitempty"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
	Links         []SpanLinkDTO          `json:"links,omitempty"`
	Children      []SpanNodeDTO          `json:"children,omitempty"`
}

// SpanLinkDTO references another span's context, possibly in a different
// trace.
type SpanLinkDTO struct {
	TraceID    string                 `json:"trace_id"`
	SpanID     string                 `json:"span_id"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

func spanDocumentToDTO(doc model.SpanDocument) SpanDTO {
	return SpanDTO{
		Id:            doc.Id,
		TraceID:       doc.TraceID,
		SpanID:        doc.SpanID,
		ParentSpanID:  doc.ParentSpanID,
		ServiceName:   doc.ServiceName,
		Name:          doc.Name,
		Kind:          doc.Kind,
		StartTime:     doc.StartTime,
		EndTime:       doc.EndTime,
		DurationNanos: doc.DurationNanos,
		StatusCode:    doc.StatusCode,
		StatusMessage: doc.StatusMessage,
		Attributes:    doc.Attributes,
	}
}

func traceSummaryToDTO(doc model.TraceSummaryDocument) TraceSummaryDTO {
	return TraceSummaryDTO{
		TraceID:       doc.TraceID,
		RootName:      doc.RootName,
		RootService:   doc.RootService,
		SpanCount:     doc.SpanCount,
		ErrorCount:    doc.ErrorCount,
		StartTime:     doc.StartTime,
		EndTime:       doc.EndTime,
		DurationNanos: doc.DurationNanos,
	}
}
