package metric

import (
	"context"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
)

// Int64Observer receives observations from an int64 callback.
type Int64Observer interface {
	Observe(value int64, attrs ...attribute.KeyValue)
}

// Float64Observer receives observations from a float64 callback.
type Float64Observer interface {
	Observe(value float64, attrs ...attribute.KeyValue)
}

// Int64Callback reports the current value of an observable instrument. It
// is invoked exactly once per collection cycle, never between cycles.
type Int64Callback func(ctx context.Context, observer Int64Observer) error

// Float64Callback is the float64 form of Int64Callback.
type Float64Callback func(ctx context.Context, observer Float64Observer) error

type int64Observer struct {
	impl *instrumentImpl[int64]
}

func (o *int64Observer) Observe(value int64, attrs ...attribute.KeyValue) {
	o.impl.observe(value, attrs)
}

type float64Observer struct {
	impl *instrumentImpl[float64]
}

func (o *float64Observer) Observe(value float64, attrs ...attribute.KeyValue) {
	o.impl.observe(value, attrs)
}

// Int64ObservableCounter is a polled monotonic counter; its callback must
// report cumulative totals.
type Int64ObservableCounter struct {
	impl *instrumentImpl[int64]
}

// Int64ObservableUpDownCounter is a polled non-monotonic counter.
type Int64ObservableUpDownCounter struct {
	impl *instrumentImpl[int64]
}

// Float64ObservableGauge is a polled last-value instrument.
type Float64ObservableGauge struct {
	impl *instrumentImpl[float64]
}
