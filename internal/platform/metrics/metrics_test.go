package metrics

import (
	"testing"
	"time"
)

func TestCollectorCounts(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 5*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 0)

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 4 {
		t.Fatalf("expected 4 requests, got %v", snap["requestsTotal"])
	}
	if snap["clientErrsTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 client error, got %v", snap["clientErrsTotal"])
	}
	if snap["serverErrsTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 server error, got %v", snap["serverErrsTotal"])
	}
	if snap["rateLimitedTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 rate limited, got %v", snap["rateLimitedTotal"])
	}
	if snap["maxDurationMs"].(uint64) != 30 {
		t.Fatalf("expected max 30ms, got %v", snap["maxDurationMs"])
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	snap := New().Snapshot()
	if snap["requestsTotal"].(uint64) != 0 {
		t.Fatalf("expected zero requests, got %v", snap["requestsTotal"])
	}
	if snap["avgDurationMs"].(float64) != 0 {
		t.Fatalf("expected zero average, got %v", snap["avgDurationMs"])
	}
}
