package integrity

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache(t *testing.T) {
	t.Run("ServesWithinTTL", func(t *testing.T) {
		c := newReportCache(time.Minute)
		var builds int32
		build := func() (*Report, error) {
			atomic.AddInt32(&builds, 1)
			return &Report{}, nil
		}

		first, err := c.get(build)
		require.NoError(t, err)
		second, err := c.get(build)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.EqualValues(t, 1, builds)

		c.invalidate()
		_, err = c.get(build)
		require.NoError(t, err)
		assert.EqualValues(t, 2, builds)
	})

	t.Run("ZeroTTLAlwaysBuilds", func(t *testing.T) {
		c := newReportCache(0)
		var builds int32
		for i := 0; i < 3; i++ {
			_, err := c.get(func() (*Report, error) {
				atomic.AddInt32(&builds, 1)
				return &Report{}, nil
			})
			require.NoError(t, err)
		}
		assert.EqualValues(t, 3, builds)
	})

	t.Run("ConcurrentMissesShareBuild", func(t *testing.T) {
		c := newReportCache(time.Minute)
		var builds int32
		release := make(chan struct{})
		build := func() (*Report, error) {
			atomic.AddInt32(&builds, 1)
			<-release
			return &Report{}, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.get(build)
				assert.NoError(t, err)
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()
		assert.EqualValues(t, 1, builds)
	})

	t.Run("ErrorNotCached", func(t *testing.T) {
		c := newReportCache(time.Minute)
		_, err := c.get(func() (*Report, error) { return nil, errors.New("boom") })
		assert.Error(t, err)

		r, err := c.get(func() (*Report, error) { return &Report{}, nil })
		require.NoError(t, err)
		assert.NotNil(t, r)
	})
}
