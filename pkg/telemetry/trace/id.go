package trace

import (
	"encoding/hex"
	"errors"
)

var (
	ErrInvalidTraceIDLength = errors.New("hex encoded trace id must be 32 characters")
	ErrInvalidSpanIDLength  = errors.New("hex encoded span id must be 16 characters")
	ErrNilID                = errors.New("trace and span ids must not be all zeroes")
)

// TraceID identifies a trace: the set of spans sharing it.
type TraceID [16]byte

// SpanID identifies a single span within a trace.
type SpanID [8]byte

var (
	nilTraceID TraceID
	nilSpanID  SpanID
)

// IsValid reports whether the trace id is non-zero.
func (t TraceID) IsValid() bool {
	return t != nilTraceID
}

func (t TraceID) String() string {
	return hex.EncodeToString(t[:])
}

// IsValid reports whether the span id is non-zero.
func (s SpanID) IsValid() bool {
	return s != nilSpanID
}

func (s SpanID) String() string {
	return hex.EncodeToString(s[:])
}

// TraceIDFromHex decodes a 32 character lowercase hex string into a TraceID.
func TraceIDFromHex(h string) (TraceID, error) {
	var id TraceID
	if len(h) != 32 {
		return id, ErrInvalidTraceIDLength
	}
	decoded, err := hex.DecodeString(h)
	if err != nil {
		return id, err
	}
	copy(id[:], decoded)
	if !id.IsValid() {
		return id, ErrNilID
	}
	return id, nil
}

// SpanIDFromHex decodes a 16 character lowercase hex string into a SpanID.
func SpanIDFromHex(h string) (SpanID, error) {
	var id SpanID
	if len(h) != 16 {
		return id, ErrInvalidSpanIDLength
	}
	decoded, err := hex.DecodeString(h)
	if err != nil {
		return id, err
	}
	copy(id[:], decoded)
	if !id.IsValid() {
		return id, ErrNilID
	}
	return id, nil
}

// TraceIDFromBytes copies raw bytes into a TraceID. Short or long input
// yields an invalid id rather than an error; the wire may carry anything.
func TraceIDFromBytes(b []byte) TraceID {
	var id TraceID
	if len(b) == 16 {
		copy(id[:], b)
	}
	return id
}

// SpanIDFromBytes copies raw bytes into a SpanID.
func SpanIDFromBytes(b []byte) SpanID {
	var id SpanID
	if len(b) == 8 {
		copy(id[:], b)
	}
	return id
}
