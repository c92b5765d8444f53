package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrCompute(t *testing.T) {
	t.Run("computes once per key", func(t *testing.T) {
		r := New()
		calls := 0

		for i := 0; i < 3; i++ {
			v, err := r.GetOrCompute("k", func() (interface{}, error) {
				calls++
				return 42, nil
			})
			require.NoError(t, err)
			require.Equal(t, 42, v)
		}
		require.Equal(t, 1, calls)
		require.Equal(t, 1, r.Len())
	})

	t.Run("distinct keys compute separately", func(t *testing.T) {
		r := New()
		a, err := r.GetOrCompute("a", func() (interface{}, error) { return 1, nil })
		require.NoError(t, err)
		b, err := r.GetOrCompute("b", func() (interface{}, error) { return 2, nil })
		require.NoError(t, err)
		require.Equal(t, 1, a)
		require.Equal(t, 2, b)
		require.Equal(t, 2, r.Len())
	})

	t.Run("errors are not stored", func(t *testing.T) {
		r := New()
		boom := errors.New("boom")

		_, err := r.GetOrCompute("k", func() (interface{}, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
		require.Zero(t, r.Len())

		// the key is retryable after a failure
		v, err := r.GetOrCompute("k", func() (interface{}, error) { return "ok", nil })
		require.NoError(t, err)
		require.Equal(t, "ok", v)
		require.Equal(t, 1, r.Len())
	})

	t.Run("concurrent same-key callers share one computation", func(t *testing.T) {
		r := New()
		var calls int32
		started := make(chan struct{})
		release := make(chan struct{})

		var wg sync.WaitGroup
		results := make([]interface{}, 20)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-started
				v, err := r.GetOrCompute("k", func() (interface{}, error) {
					atomic.AddInt32(&calls, 1)
					<-release
					return "shared", nil
				})
				require.NoError(t, err)
				results[i] = v
			}(i)
		}

		close(started)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls)
		for _, v := range results {
			require.Equal(t, "shared", v)
		}
	})
}

func TestKey(t *testing.T) {
	t.Run("same parts same key", func(t *testing.T) {
		require.Equal(t, Key("curve", "2024-01-04", 2), Key("curve", "2024-01-04", 2))
	})

	t.Run("different parts different keys", func(t *testing.T) {
		require.NotEqual(t, Key("curve", "2024-01-04"), Key("curve", "2024-01-05"))
		require.NotEqual(t, Key("curve"), Key("model"))
		require.NotEqual(t, Key(1, 23), Key(12, 3))
	})

	t.Run("part boundaries matter", func(t *testing.T) {
		require.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	})
}
