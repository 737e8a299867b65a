package metric

import (
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
)

// Number constrains the value types instruments can record.
type Number interface {
	~int64 | ~float64
}

// ResourceMetrics is one collection cycle's output: every metric stream
// produced by a provider, grouped by instrumentation scope.
type ResourceMetrics struct {
	Resource     []attribute.KeyValue
	ScopeMetrics []ScopeMetrics
}

type ScopeMetrics struct {
	Scope   scope.Scope
	Metrics []Metrics
}

// Metrics is a single stream: the (possibly view-renamed) instrument
// identity plus its aggregated data.
type Metrics struct {
	Name        string
	Description string
	Unit        string
	Data        Data
}

// Data is the aggregated payload of a stream: Sum, Gauge or Histogram.
type Data interface {
	isData()
}

type DataPoint[N Number] struct {
	Attributes []attribute.KeyValue
	StartTime  time.Time
	Time       time.Time
	Value      N
}

// Sum is a cumulative sum per attribute set.
type Sum[N Number] struct {
	DataPoints []DataPoint[N]
	Monotonic  bool
}

func (Sum[N]) isData() {}

// Gauge holds the last recorded value per attribute set.
type Gauge[N Number] struct {
	DataPoints []DataPoint[N]
}

func (Gauge[N]) isData() {}

type HistogramDataPoint struct {
	Attributes   []attribute.KeyValue
	StartTime    time.Time
	Time         time.Time
	Count        uint64
	Sum          float64
	Min          float64
	Max          float64
	Bounds       []float64
	BucketCounts []uint64
}

// Histogram is a cumulative explicit-bucket histogram per attribute set.
type Histogram struct {
	DataPoints []HistogramDataPoint
}

func (Histogram) isData() {}
