package trace

import (
	"testing"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/stretchr/testify/assert"
)

func TestTruncateAttr(t *testing.T) {
	t.Run("Truncates oversize strings and slice elements", func(t *testing.T) {
		out := truncateAttr(attribute.String("k", "overflowing"), 4)
		assert.Equal(t, "over", out.Value.AsString())

		out = truncateAttr(attribute.StringSlice("k", []string{"overflowing", "ok"}), 4)
		assert.Equal(t, []string{"over", "ok"}, out.Value.AsStringSlice())
	})

	t.Run("A negative limit disables truncation", func(t *testing.T) {
		kv := attribute.String("k", "overflowing")
		assert.Equal(t, kv, truncateAttr(kv, -1))
	})

	t.Run("Slice truncation leaves the original value untouched", func(t *testing.T) {
		kv := attribute.StringSlice("k", []string{"overflowing"})
		out := truncateAttr(kv, 4)

		assert.Equal(t, []string{"over"}, out.Value.AsStringSlice())
		assert.Equal(t, []string{"overflowing"}, kv.Value.AsStringSlice())
	})
}
