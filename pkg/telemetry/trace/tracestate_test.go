package trace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceState(t *testing.T) {
	t.Run("Parse skips malformed members", func(t *testing.T) {
		ts := ParseTraceState("a=1, broken ,b=2,=nokey")
		assert.Equal(t, 2, ts.Len())
		assert.Equal(t, "1", ts.Get("a"))
		assert.Equal(t, "2", ts.Get("b"))
	})

	t.Run("Insert puts the member at the front and dedupes", func(t *testing.T) {
		ts := ParseTraceState("a=1,b=2")
		ts, err := ts.Insert("a", "updated")
		assert.Nil(t, err)
		assert.Equal(t, "a=updated,b=2", ts.String())
	})

	t.Run("Insert rejects keys containing separators", func(t *testing.T) {
		ts := ParseTraceState("a=1")
		_, err := ts.Insert("bad=key", "v")
		assert.Equal(t, ErrInvalidTraceStateKey, err)
		_, err = ts.Insert("", "v")
		assert.Equal(t, ErrInvalidTraceStateKey, err)
	})

	t.Run("Insert fails once the member limit is reached", func(t *testing.T) {
		var ts TraceState
		var err error
		for i := 0; i < 32; i++ {
			ts, err = ts.Insert(fmt.Sprintf("key%d", i), "v")
			assert.Nil(t, err)
		}
		_, err = ts.Insert("overflow", "v")
		assert.Equal(t, ErrTraceStateFull, err)

		// updating an existing member still works at the limit
		ts, err = ts.Insert("key0", "updated")
		assert.Nil(t, err)
		assert.Equal(t, "updated", ts.Get("key0"))
	})

	t.Run("Delete removes the member", func(t *testing.T) {
		ts := ParseTraceState("a=1,b=2")
		ts = ts.Delete("a")
		assert.Equal(t, "b=2", ts.String())
	})

	t.Run("Mutation returns copies", func(t *testing.T) {
		original := ParseTraceState("a=1")
		updated, err := original.Insert("b", "2")
		assert.Nil(t, err)
		assert.Equal(t, "a=1", original.String())
		assert.Equal(t, "b=2,a=1", updated.String())
	})
}
