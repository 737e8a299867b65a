package trace

import "github.com/lattice-obs/lattice/pkg/telemetry/attribute"

// SpanLimits caps the amount of data a single span will hold. Data beyond
// a limit is dropped (or truncated, for attribute value lengths) and the
// drop is counted on the snapshot.
type SpanLimits struct {
	AttributeCountLimit       int
	AttributeValueLengthLimit int
	EventCountLimit           int
	LinkCountLimit            int
}

func DefaultSpanLimits() SpanLimits {
	return SpanLimits{
		AttributeCountLimit:       128,
		AttributeValueLengthLimit: -1,
		EventCountLimit:           128,
		LinkCountLimit:            128,
	}
}

// truncateAttr shortens string-typed attribute values to the limit. A
// negative limit disables truncation.
func truncateAttr(kv attribute.KeyValue, limit int) attribute.KeyValue {
	if limit < 0 {
		return kv
	}
	switch kv.Value.Type() {
	case attribute.STRING:
		if v := kv.Value.AsString(); len(v) > limit {
			return attribute.String(string(kv.Key), v[:limit])
		}
	case attribute.STRINGSLICE:
		// AsStringSlice exposes the Value's backing slice, so truncate a
		// copy to leave the caller's original attribute untouched
		v := kv.Value.AsStringSlice()
		var changed bool
		truncated := make([]string, len(v))
		copy(truncated, v)
		for i := range truncated {
			if len(truncated[i]) > limit {
				truncated[i] = truncated[i][:limit]
				changed = true
			}
		}
		if changed {
			return attribute.StringSlice(string(kv.Key), truncated)
		}
	}
	return kv
}
