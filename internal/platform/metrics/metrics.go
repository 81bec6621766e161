package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process request counters. Not a metrics
// backend; just enough for the /metrics snapshot endpoint.
type Collector struct {
	requests    atomic.Uint64
	clientErrs  atomic.Uint64
	serverErrs  atomic.Uint64
	rateLimited atomic.Uint64
	durationMs  atomic.Uint64
	maxMs       atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status == 429:
		c.rateLimited.Add(1)
	case status >= 500:
		c.serverErrs.Add(1)
	case status >= 400:
		c.clientErrs.Add(1)
	}

	ms := uint64(duration.Milliseconds())
	c.durationMs.Add(ms)
	for {
		current := c.maxMs.Load()
		if ms <= current || c.maxMs.CompareAndSwap(current, ms) {
			return
		}
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(c.durationMs.Load()) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"clientErrsTotal":  c.clientErrs.Load(),
		"serverErrsTotal":  c.serverErrs.Load(),
		"rateLimitedTotal": c.rateLimited.Load(),
		"avgDurationMs":    avg,
		"maxDurationMs":    c.maxMs.Load(),
	}
}
