package integrity

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// reportCache keeps the last combined report for a TTL. Concurrent misses share one
// build.
type reportCache struct {
	ttl time.Duration

	mu     sync.RWMutex
	report *Report
	built  time.Time
	sf     singleflight.Group
}

func newReportCache(ttl time.Duration) *reportCache {
	return &reportCache{ttl: ttl}
}

func (c *reportCache) fresh() (*Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.report == nil || c.ttl <= 0 || time.Since(c.built) > c.ttl {
		return nil, false
	}
	return c.report, true
}

func (c *reportCache) get(build func() (*Report, error)) (*Report, error) {
	if r, ok := c.fresh(); ok {
		return r, nil
	}

	v, err, _ := c.sf.Do("report", func() (any, error) {
		// Another caller may have finished a build while this one waited.
		if r, ok := c.fresh(); ok {
			return r, nil
		}

		r, err := build()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.report = r
		c.built = time.Now()
		c.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Report), nil
}

func (c *reportCache) invalidate() {
	c.mu.Lock()
	c.report = nil
	c.mu.Unlock()
}
