package metric

import (
	"sync"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
)

// aggregator is the stateful half of a stream. record folds in a
// synchronous measurement, observe sets the value reported by a callback
// (observable sums report cumulative totals, not deltas), and collect
// snapshots the cumulative state without resetting it.
type aggregator[N Number] interface {
	record(value N, attrs attribute.Set)
	observe(value N, attrs attribute.Set)
	collect(now time.Time) (Data, bool)
}

func newAggregator[N Number](agg Aggregation, start time.Time) aggregator[N] {
	switch a := agg.(type) {
	case AggregationSum:
		return &sumAggregator[N]{monotonic: a.Monotonic, start: start, points: make(map[string]*numericPoint[N])}
	case AggregationLastValue:
		return &lastValueAggregator[N]{start: start, points: make(map[string]*numericPoint[N])}
	case AggregationExplicitBucketHistogram:
		return &histogramAggregator[N]{bounds: a.Boundaries, start: start, points: make(map[string]*histogramPoint)}
	default:
		return nil
	}
}

type numericPoint[N Number] struct {
	attrs attribute.Set
	value N
}

type sumAggregator[N Number] struct {
	mu        sync.Mutex
	monotonic bool
	start     time.Time
	points    map[string]*numericPoint[N]
}

func (a *sumAggregator[N]) record(value N, attrs attribute.Set) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := attrs.Encoded()
	p, ok := a.points[key]
	if !ok {
		p = &numericPoint[N]{attrs: attrs}
		a.points[key] = p
	}
	p.value += value
}

func (a *sumAggregator[N]) observe(value N, attrs attribute.Set) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := attrs.Encoded()
	p, ok := a.points[key]
	if !ok {
		p = &numericPoint[N]{attrs: attrs}
		a.points[key] = p
	}
	p.value = value
}

func (a *sumAggregator[N]) collect(now time.Time) (Data, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.points) == 0 {
		return nil, false
	}
	out := Sum[N]{Monotonic: a.monotonic, DataPoints: make([]DataPoint[N], 0, len(a.points))}
	for _, p := range a.points {
		out.DataPoints = append(out.DataPoints, DataPoint[N]{
			Attributes: p.attrs.ToSlice(),
			StartTime:  a.start,
			Time:       now,
			Value:      p.value,
		})
	}
	return out, true
}

type lastValueAggregator[N Number] struct {
	mu     sync.Mutex
	start  time.Time
	points map[string]*numericPoint[N]
}

func (a *lastValueAggregator[N]) record(value N, attrs attribute.Set) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := attrs.Encoded()
	p, ok := a.points[key]
	if !ok {
		p = &numericPoint[N]{attrs: attrs}
		a.points[key] = p
	}
	p.value = value
}

func (a *lastValueAggregator[N]) observe(value N, attrs attribute.Set) {
	a.record(value, attrs)
}

func (a *lastValueAggregator[N]) collect(now time.Time) (Data, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.points) == 0 {
		return nil, false
	}
	out := Gauge[N]{DataPoints: make([]DataPoint[N], 0, len(a.points))}
	for _, p := range a.points {
		out.DataPoints = append(out.DataPoints, DataPoint[N]{
			Attributes: p.attrs.ToSlice(),
			StartTime:  a.start,
			Time:       now,
			Value:      p.value,
		})
	}
	return out, true
}

type histogramPoint struct {
	attrs        attribute.Set
	count        uint64
	sum          float64
	min          float64
	max          float64
	bucketCounts []uint64
}

type histogramAggregator[N Number] struct {
	mu     sync.Mutex
	bounds []float64
	start  time.Time
	points map[string]*histogramPoint
}

func (a *histogramAggregator[N]) record(value N, attrs attribute.Set) {
	v := float64(value)
	a.mu.Lock()
	defer a.mu.Unlock()
	key := attrs.Encoded()
	p, ok := a.points[key]
	if !ok {
		p = &histogramPoint{
			attrs:        attrs,
			min:          v,
			max:          v,
			bucketCounts: make([]uint64, len(a.bounds)+1),
		}
		a.points[key] = p
	}
	p.count++
	p.sum += v
	if v < p.min {
		p.min = v
	}
	if v > p.max {
		p.max = v
	}
	idx := len(a.bounds)
	for i, bound := range a.bounds {
		if v <= bound {
			idx = i
			break
		}
	}
	p.bucketCounts[idx]++
}

func (a *histogramAggregator[N]) observe(value N, attrs attribute.Set) {
	a.record(value, attrs)
}

func (a *histogramAggregator[N]) collect(now time.Time) (Data, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.points) == 0 {
		return nil, false
	}
	out := Histogram{DataPoints: make([]HistogramDataPoint, 0, len(a.points))}
	for _, p := range a.points {
		counts := make([]uint64, len(p.bucketCounts))
		copy(counts, p.bucketCounts)
		out.DataPoints = append(out.DataPoints, HistogramDataPoint{
			Attributes:   p.attrs.ToSlice(),
			StartTime:    a.start,
			Time:         now,
			Count:        p.count,
			Sum:          p.sum,
			Min:          p.min,
			Max:          p.max,
			Bounds:       a.bounds,
			BucketCounts: counts,
		})
	}
	return out, true
}
