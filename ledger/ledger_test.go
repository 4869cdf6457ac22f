package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger(t *testing.T) {
	t.Run("MarkAndCheck", func(t *testing.T) {
		l := New()

		assert.False(t, l.IsFlagged(42))
		l.MarkFlagged(42)
		assert.True(t, l.IsFlagged(42))
		assert.False(t, l.IsFlagged(-42))

		l.MarkFlagged(-42)
		assert.True(t, l.IsFlagged(-42))
		assert.Equal(t, uint64(2), l.Cardinality())
	})

	t.Run("MarkAllBatch", func(t *testing.T) {
		l := New()
		l.MarkAll([]int64{1, 2, 3, -7, 2})

		assert.Equal(t, uint64(4), l.Cardinality())
		for _, id := range []int64{1, 2, 3, -7} {
			assert.True(t, l.IsFlagged(id), "id %d", id)
		}

		l.MarkAll(nil)
		assert.Equal(t, uint64(4), l.Cardinality())
	})

	t.Run("ToSliceRoundTrip", func(t *testing.T) {
		l := New()
		ids := []int64{-5, -1, 0, 3, 1 << 40}
		l.MarkAll(ids)

		got := l.ToSlice()
		assert.ElementsMatch(t, ids, got)
	})

	t.Run("Reset", func(t *testing.T) {
		l := New()
		l.MarkAll([]int64{1, 2, 3})
		l.Reset()

		assert.Equal(t, uint64(0), l.Cardinality())
		assert.False(t, l.IsFlagged(1))
	})

	t.Run("ConcurrentMarking", func(t *testing.T) {
		l := New()

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				base := int64(w * 1000)
				for i := int64(0); i < 100; i++ {
					l.MarkAll([]int64{base + i, -(base + i)})
					_ = l.IsFlagged(base + i)
				}
			}(w)
		}
		wg.Wait()

		require.Equal(t, uint64(8*100*2-1), l.Cardinality()) // 0 and -0 collide
	})
}
