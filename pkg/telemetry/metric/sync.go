package metric

import (
	"context"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
)

// Int64Counter is a synchronous, monotonic additive instrument.
type Int64Counter struct {
	impl *instrumentImpl[int64]
}

// Add records an increment. Negative increments violate monotonicity and
// are dropped.
func (c *Int64Counter) Add(_ context.Context, incr int64, attrs ...attribute.KeyValue) {
	if incr < 0 {
		return
	}
	c.impl.record(incr, attrs)
}

// Int64UpDownCounter is a synchronous additive instrument accepting any
// sign.
type Int64UpDownCounter struct {
	impl *instrumentImpl[int64]
}

func (c *Int64UpDownCounter) Add(_ context.Context, incr int64, attrs ...attribute.KeyValue) {
	c.impl.record(incr, attrs)
}

// Float64Histogram is a synchronous sample-distribution instrument.
type Float64Histogram struct {
	impl *instrumentImpl[float64]
}

func (h *Float64Histogram) Record(_ context.Context, value float64, attrs ...attribute.KeyValue) {
	h.impl.record(value, attrs)
}

// Float64Gauge is a synchronous last-value instrument.
type Float64Gauge struct {
	impl *instrumentImpl[float64]
}

func (g *Float64Gauge) Record(_ context.Context, value float64, attrs ...attribute.KeyValue) {
	g.impl.record(value, attrs)
}
