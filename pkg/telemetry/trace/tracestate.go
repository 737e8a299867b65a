package trace

import (
	"errors"
	"strings"
)

const maxTraceStateMembers = 32

var (
	ErrTraceStateFull       = errors.New("trace state already holds the maximum number of members")
	ErrInvalidTraceStateKey = errors.New("trace state keys must be non-empty and free of '=' and ','")
)

type traceStateMember struct {
	key   string
	value string
}

// TraceState is an ordered list of key=value members carried alongside the
// trace flags, following W3C tracestate semantics: updating a key moves its
// member to the front, and the list is bounded.
//
// TraceState is immutable; mutating operations return a copy.
type TraceState struct {
	members []traceStateMember
}

// ParseTraceState parses a comma separated key=value list. Malformed
// members are skipped rather than failing the whole header.
func ParseTraceState(raw string) TraceState {
	var ts TraceState
	if raw == "" {
		return ts
	}
	for _, member := range strings.Split(raw, ",") {
		member = strings.TrimSpace(member)
		key, value, found := strings.Cut(member, "=")
		if !found || key == "" {
			continue
		}
		if len(ts.members) == maxTraceStateMembers {
			break
		}
		ts.members = append(ts.members, traceStateMember{key: key, value: value})
	}
	return ts
}

// Get returns the value stored for key, or the empty string.
func (ts TraceState) Get(key string) string {
	for _, m := range ts.members {
		if m.key == key {
			return m.value
		}
	}
	return ""
}

// Insert returns a copy with key set to value at the front of the list.
// An existing member for key is removed first.
func (ts TraceState) Insert(key, value string) (TraceState, error) {
	if key == "" || strings.ContainsAny(key, "=,") {
		return ts, ErrInvalidTraceStateKey
	}
	updated := TraceState{members: make([]traceStateMember, 0, len(ts.members)+1)}
	updated.members = append(updated.members, traceStateMember{key: key, value: value})
	for _, m := range ts.members {
		if m.key == key {
			continue
		}
		updated.members = append(updated.members, m)
	}
	if len(updated.members) > maxTraceStateMembers {
		return ts, ErrTraceStateFull
	}
	return updated, nil
}

// Delete returns a copy without the member for key.
func (ts TraceState) Delete(key string) TraceState {
	updated := TraceState{members: make([]traceStateMember, 0, len(ts.members))}
	for _, m := range ts.members {
		if m.key == key {
			continue
		}
		updated.members = append(updated.members, m)
	}
	return updated
}

func (ts TraceState) Len() int {
	return len(ts.members)
}

func (ts TraceState) String() string {
	parts := make([]string, len(ts.members))
	for i, m := range ts.members {
		parts[i] = m.key + "=" + m.value
	}
	return strings.Join(parts, ",")
}
