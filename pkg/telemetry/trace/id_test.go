package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDParsing(t *testing.T) {
	t.Run("Round-trips valid hex ids", func(t *testing.T) {
		traceID, err := TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		assert.Nil(t, err)
		assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", traceID.String())

		spanID, err := SpanIDFromHex("0102030405060708")
		assert.Nil(t, err)
		assert.Equal(t, "0102030405060708", spanID.String())
	})

	t.Run("Rejects wrong lengths", func(t *testing.T) {
		_, err := TraceIDFromHex("0102")
		assert.Equal(t, ErrInvalidTraceIDLength, err)
		_, err = SpanIDFromHex("0102")
		assert.Equal(t, ErrInvalidSpanIDLength, err)
	})

	t.Run("Rejects all-zero ids", func(t *testing.T) {
		_, err := TraceIDFromHex("00000000000000000000000000000000")
		assert.Equal(t, ErrNilID, err)
		_, err = SpanIDFromHex("0000000000000000")
		assert.Equal(t, ErrNilID, err)
	})

	t.Run("FromBytes tolerates malformed input", func(t *testing.T) {
		assert.False(t, TraceIDFromBytes([]byte{1, 2, 3}).IsValid())
		assert.False(t, SpanIDFromBytes(nil).IsValid())
		assert.True(t, TraceIDFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}).IsValid())
	})
}

func TestRandomIDGenerator(t *testing.T) {
	t.Run("Generates valid distinct ids", func(t *testing.T) {
		gen := NewRandomIDGenerator()
		traceID := gen.NewTraceID()
		assert.True(t, traceID.IsValid())
		assert.True(t, gen.NewSpanID().IsValid())
		assert.NotEqual(t, traceID, gen.NewTraceID())
	})
}
