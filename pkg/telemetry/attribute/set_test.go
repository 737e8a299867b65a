package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("Later writes win for the same key", func(t *testing.T) {
		s := NewSet(String("env", "dev"), String("env", "prod"))
		v, ok := s.Value("env")
		assert.True(t, ok)
		assert.Equal(t, "prod", v.AsString())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Invalid attributes are dropped", func(t *testing.T) {
		s := NewSet(String("", "nameless"), Int("answer", 42))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("ToSlice returns attributes sorted by key", func(t *testing.T) {
		s := NewSet(String("b", "2"), String("a", "1"), String("c", "3"))
		kvs := s.ToSlice()
		assert.Equal(t, []KeyValue{String("a", "1"), String("b", "2"), String("c", "3")}, kvs)
	})

	t.Run("Filter keeps only allowed keys", func(t *testing.T) {
		s := NewSet(String("keep", "yes"), String("drop", "no"))
		filtered := s.Filter(map[Key]struct{}{"keep": {}})
		assert.Equal(t, 1, filtered.Len())
		_, ok := filtered.Value("keep")
		assert.True(t, ok)
		// the original set is untouched
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Encoded is deterministic regardless of insertion order", func(t *testing.T) {
		a := NewSet(String("x", "1"), Int("y", 2))
		b := NewSet(Int("y", 2), String("x", "1"))
		assert.Equal(t, a.Encoded(), b.Encoded())
		assert.True(t, a.Equivalent(b))
	})

	t.Run("Different values are not equivalent", func(t *testing.T) {
		a := NewSet(String("x", "1"))
		b := NewSet(String("x", "2"))
		assert.False(t, a.Equivalent(b))
	})
}

func TestValue(t *testing.T) {
	t.Run("Slice constructors copy their input", func(t *testing.T) {
		in := []string{"a", "b"}
		kv := StringSlice("list", in)
		in[0] = "mutated"
		assert.Equal(t, []string{"a", "b"}, kv.Value.AsStringSlice())
	})

	t.Run("AsInterface exposes the underlying value", func(t *testing.T) {
		assert.Equal(t, int64(7), Int("n", 7).Value.AsInterface())
		assert.Equal(t, true, Bool("b", true).Value.AsInterface())
		assert.Equal(t, 1.5, Float64("f", 1.5).Value.AsInterface())
		assert.Equal(t, "s", String("s", "s").Value.AsInterface())
	})

	t.Run("Emit renders a stable textual form", func(t *testing.T) {
		assert.Equal(t, "42", Int("n", 42).Value.Emit())
		assert.Equal(t, "true", Bool("b", true).Value.Emit())
	})
}
