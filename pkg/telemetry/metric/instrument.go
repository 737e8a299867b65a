package metric

import "github.com/lattice-obs/lattice/pkg/telemetry/scope"

// InstrumentKind distinguishes the instrument families. Synchronous
// instruments record inline with program execution; observable ones are
// polled via their callback once per collection cycle.
type InstrumentKind int

const (
	instrumentKindUnset InstrumentKind = iota
	InstrumentKindCounter
	InstrumentKindUpDownCounter
	InstrumentKindHistogram
	InstrumentKindGauge
	InstrumentKindObservableCounter
	InstrumentKindObservableUpDownCounter
	InstrumentKindObservableGauge
)

func (k InstrumentKind) String() string {
	switch k {
	case InstrumentKindCounter:
		return "Counter"
	case InstrumentKindUpDownCounter:
		return "UpDownCounter"
	case InstrumentKindHistogram:
		return "Histogram"
	case InstrumentKindGauge:
		return "Gauge"
	case InstrumentKindObservableCounter:
		return "ObservableCounter"
	case InstrumentKindObservableUpDownCounter:
		return "ObservableUpDownCounter"
	case InstrumentKindObservableGauge:
		return "ObservableGauge"
	default:
		return "Unset"
	}
}

// Instrument describes a registered instrument: the identity views match
// against.
type Instrument struct {
	Name        string
	Description string
	Unit        string
	Kind        InstrumentKind
	Scope       scope.Scope
}

// InstrumentOption configures instrument construction.
type InstrumentOption func(*Instrument)

func WithDescription(desc string) InstrumentOption {
	return func(i *Instrument) {
		i.Description = desc
	}
}

func WithUnit(unit string) InstrumentOption {
	return func(i *Instrument) {
		i.Unit = unit
	}
}
