package trace

import (
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
)

type spanConfig struct {
	kind       SpanKind
	attributes []attribute.KeyValue
	links      []Link
	timestamp  time.Time
	newRoot    bool
}

// SpanStartOption configures Tracer.Start.
type SpanStartOption func(*spanConfig)

// WithSpanKind sets the span kind; Internal is the default.
func WithSpanKind(kind SpanKind) SpanStartOption {
	return func(c *spanConfig) {
		c.kind = kind
	}
}

// WithAttributes attaches attributes at span start.
func WithAttributes(kvs ...attribute.KeyValue) SpanStartOption {
	return func(c *spanConfig) {
		c.attributes = append(c.attributes, kvs...)
	}
}

// WithLinks records links at span start.
func WithLinks(links ...Link) SpanStartOption {
	return func(c *spanConfig) {
		c.links = append(c.links, links...)
	}
}

// WithTimestamp overrides the start timestamp.
func WithTimestamp(t time.Time) SpanStartOption {
	return func(c *spanConfig) {
		c.timestamp = t
	}
}

// WithNewRoot forces a fresh trace, ignoring any span in the context.
func WithNewRoot() SpanStartOption {
	return func(c *spanConfig) {
		c.newRoot = true
	}
}

func newSpanConfig(opts []SpanStartOption) spanConfig {
	var cfg spanConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type eventConfig struct {
	attributes []attribute.KeyValue
	timestamp  time.Time
}

// EventOption configures Span.AddEvent and Span.RecordError.
type EventOption func(*eventConfig)

func WithEventAttributes(kvs ...attribute.KeyValue) EventOption {
	return func(c *eventConfig) {
		c.attributes = append(c.attributes, kvs...)
	}
}

func WithEventTimestamp(t time.Time) EventOption {
	return func(c *eventConfig) {
		c.timestamp = t
	}
}

func newEventConfig(opts []EventOption) eventConfig {
	var cfg eventConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.timestamp.IsZero() {
		cfg.timestamp = time.Now()
	}
	return cfg
}

type endConfig struct {
	timestamp time.Time
}

// EndOption configures Span.End.
type EndOption func(*endConfig)

func WithEndTimestamp(t time.Time) EndOption {
	return func(c *endConfig) {
		c.timestamp = t
	}
}

func newEndConfig(opts []EndOption) endConfig {
	var cfg endConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
