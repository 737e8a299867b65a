package metric

// Aggregation selects how a stream folds measurements into data points.
type Aggregation interface {
	isAggregation()
}

// AggregationDrop discards every measurement; the stream produces nothing.
type AggregationDrop struct{}

func (AggregationDrop) isAggregation() {}

// AggregationSum accumulates a cumulative sum per attribute set.
type AggregationSum struct {
	Monotonic bool
}

func (AggregationSum) isAggregation() {}

// AggregationLastValue keeps the most recent measurement per attribute set.
type AggregationLastValue struct{}

func (AggregationLastValue) isAggregation() {}

// AggregationExplicitBucketHistogram buckets measurements by the given
// boundaries. A measurement lands in bucket i when value <= Boundaries[i],
// with one overflow bucket past the last boundary.
type AggregationExplicitBucketHistogram struct {
	Boundaries []float64
}

func (AggregationExplicitBucketHistogram) isAggregation() {}

// DefaultHistogramBoundaries mirror the common latency-oriented defaults.
var DefaultHistogramBoundaries = []float64{0, 5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000}

// defaultAggregation returns the aggregation used when no view overrides
// the instrument.
func defaultAggregation(kind InstrumentKind) Aggregation {
	switch kind {
	case InstrumentKindCounter, InstrumentKindObservableCounter:
		return AggregationSum{Monotonic: true}
	case InstrumentKindUpDownCounter, InstrumentKindObservableUpDownCounter:
		return AggregationSum{Monotonic: false}
	case InstrumentKindHistogram:
		return AggregationExplicitBucketHistogram{Boundaries: DefaultHistogramBoundaries}
	case InstrumentKindGauge, InstrumentKindObservableGauge:
		return AggregationLastValue{}
	default:
		return AggregationDrop{}
	}
}
