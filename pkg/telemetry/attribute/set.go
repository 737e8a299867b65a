package attribute

import (
	"sort"
	"strings"
)

// Set is a deduplicated collection of attributes keyed by attribute key.
// Later writes win over earlier writes for the same key.
type Set struct {
	attrs map[Key]Value
}

func NewSet(kvs ...KeyValue) Set {
	s := Set{attrs: make(map[Key]Value, len(kvs))}
	s.Apply(kvs...)
	return s
}

// Apply merges the given attributes into the set, last-write-wins.
// Invalid attributes are dropped.
func (s *Set) Apply(kvs ...KeyValue) {
	if s.attrs == nil {
		s.attrs = make(map[Key]Value, len(kvs))
	}
	for _, kv := range kvs {
		if !kv.Valid() {
			continue
		}
		s.attrs[kv.Key] = kv.Value
	}
}

func (s Set) Len() int {
	return len(s.attrs)
}

// Value returns the value stored for key, if any.
func (s Set) Value(key Key) (Value, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// ToSlice returns the attributes sorted by key. The slice is a snapshot
// detached from the set.
func (s Set) ToSlice() []KeyValue {
	out := make([]KeyValue, 0, len(s.attrs))
	for k, v := range s.attrs {
		out = append(out, KeyValue{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Filter returns a copy of the set holding only attributes whose keys are
// in the allow list.
func (s Set) Filter(allowed map[Key]struct{}) Set {
	filtered := Set{attrs: make(map[Key]Value)}
	for k, v := range s.attrs {
		if _, ok := allowed[k]; ok {
			filtered.attrs[k] = v
		}
	}
	return filtered
}

// Equivalent reports whether two sets hold the same keys with the same
// emitted values. Used to bucket measurements by attribute set.
func (s Set) Equivalent(other Set) bool {
	return s.Encoded() == other.Encoded()
}

// Encoded returns a deterministic string encoding of the set, usable as a
// map key for aggregation state.
func (s Set) Encoded() string {
	kvs := s.ToSlice()
	var sb strings.Builder
	for i, kv := range kvs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(kv.Value.Emit())
	}
	return sb.String()
}
