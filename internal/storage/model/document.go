package model

import "time"

// SpanDocument is the persisted form of a span snapshot.
type SpanDocument struct {
	Id            string                 `json:"_id,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
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
	Events        []SpanEventDocument    `json:"events,omitempty"`
	Links         []SpanLinkDocument     `json:"links,omitempty"`
	ScopeName     string                 `json:"scope_name,omitempty"`
	ScopeVersion  string                 `json:"scope_version,omitempty"`
}

type SpanEventDocument struct {
	Name       string                 `json:"name"`
	Timestamp  time.Time              `json:"timestamp"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

type SpanLinkDocument struct {
	TraceID    string                 `json:"trace_id"`
	SpanID     string                 `json:"span_id"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// LogDocument is the persisted form of a log record.
type LogDocument struct {
	Id          string                 `json:"_id,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    string                 `json:"severity"`
	Message     string                 `json:"message"`
	ServiceName string                 `json:"service_name"`
	TraceID     string                 `json:"trace_id,omitempty"`
	SpanID      string                 `json:"span_id,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

// MetricDocument is one flattened metric data point.
type MetricDocument struct {
	Id           string                 `json:"_id,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Unit         string                 `json:"unit,omitempty"`
	Type         string                 `json:"type"`
	ServiceName  string                 `json:"service_name"`
	Timestamp    time.Time              `json:"timestamp"`
	Value        float64                `json:"value"`
	Count        uint64                 `json:"count,omitempty"`
	Sum          float64                `json:"sum,omitempty"`
	Bounds       []float64              `json:"bounds,omitempty"`
	BucketCounts []uint64               `json:"bucket_counts,omitempty"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

// TraceSummaryDocument is the per-trace rollup produced by the completion
// pipeline once a trace has settled.
type TraceSummaryDocument struct {
	Id            string    `json:"_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	TraceID       string    `json:"trace_id"`
	RootName      string    `json:"root_name,omitempty"`
	RootService   string    `json:"root_service,omitempty"`
	SpanCount     int       `json:"span_count"`
	ErrorCount    int       `json:"error_count"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationNanos int64     `json:"duration_nanos"`
}
