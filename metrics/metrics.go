// Package metrics provides the small set of in-process metrics bbsrand
// records: atomic counters and gauges for seeds, expansions and derived
// scalars, and a mutex-guarded histogram for batch sizes and latencies.
package metrics

import (
	"math"
	"math/bits"
	"sync"
	"sync/atomic"
	"time"
)

// ---------------------------------------------------------------------------
// Counter
// ---------------------------------------------------------------------------

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	value atomic.Int64
}

// NewCounter returns a new Counter with the given name.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Add increments the counter by n. Non-positive values are ignored.
func (c *Counter) Add(n int64) {
	if n > 0 {
		c.value.Add(n)
	}
}

// Value returns the current counter value.
func (c *Counter) Value() int64 { return c.value.Load() }

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// ---------------------------------------------------------------------------
// Gauge
// ---------------------------------------------------------------------------

// Gauge holds the most recently set value.
type Gauge struct {
	name  string
	value atomic.Int64
}

// NewGauge returns a new Gauge with the given name.
func NewGauge(name string) *Gauge {
	return &Gauge{name: name}
}

// Set sets the gauge to v.
func (g *Gauge) Set(v int64) { g.value.Store(v) }

// Value returns the current gauge value.
func (g *Gauge) Value() int64 { return g.value.Load() }

// Name returns the metric name.
func (g *Gauge) Name() string { return g.name }

// ---------------------------------------------------------------------------
// Histogram
// ---------------------------------------------------------------------------

// histogramBuckets is the number of log2 buckets. The last one is open-ended.
const histogramBuckets = 32

// HistogramStats is a consistent reading of a Histogram.
type HistogramStats struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Mean returns Sum/Count, or 0 with no observations.
func (s HistogramStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Bucket is one non-empty histogram bucket: Count observations v with
// v <= UpperBound and v greater than the previous bucket's bound.
type Bucket struct {
	UpperBound float64
	Count      int64
}

// Histogram tracks count, sum and range of observations, and counts them in
// power-of-two buckets so batch sizes below and above an epoch boundary land
// in different buckets.
type Histogram struct {
	name    string
	mu      sync.Mutex
	stats   HistogramStats
	buckets [histogramBuckets]int64
}

// NewHistogram returns a new Histogram with the given name.
func NewHistogram(name string) *Histogram {
	return &Histogram{name: name}
}

// Observe records a value.
func (h *Histogram) Observe(v float64) {
	i := bucketIndex(v)
	h.mu.Lock()
	if h.stats.Count == 0 {
		h.stats.Min, h.stats.Max = v, v
	} else {
		h.stats.Min = min(h.stats.Min, v)
		h.stats.Max = max(h.stats.Max, v)
	}
	h.stats.Count++
	h.stats.Sum += v
	h.buckets[i]++
	h.mu.Unlock()
}

// bucketIndex maps v to the smallest i with v <= 2^i.
func bucketIndex(v float64) int {
	if v <= 1 || math.IsNaN(v) {
		return 0
	}
	if v >= math.Ldexp(1, histogramBuckets-1) {
		return histogramBuckets - 1
	}
	return bits.Len64(uint64(math.Ceil(v)) - 1)
}

// Stats returns count, sum, min and max read under one lock.
func (h *Histogram) Stats() HistogramStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Count returns the number of observations.
func (h *Histogram) Count() int64 { return h.Stats().Count }

// Buckets returns the non-empty buckets in increasing order. The last
// bucket's bound is +Inf.
func (h *Histogram) Buckets() []Bucket {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Bucket
	for i, n := range h.buckets {
		if n == 0 {
			continue
		}
		bound := math.Ldexp(1, i)
		if i == histogramBuckets-1 {
			bound = math.Inf(1)
		}
		out = append(out, Bucket{UpperBound: bound, Count: n})
	}
	return out
}

// Name returns the metric name.
func (h *Histogram) Name() string { return h.name }

// ---------------------------------------------------------------------------
// Timer
// ---------------------------------------------------------------------------

// Timer records the elapsed time, in microseconds, into a Histogram when
// stopped. Scalar batches complete well under a millisecond.
type Timer struct {
	start time.Time
	hist  *Histogram
}

// NewTimer starts a timer that records into h. h may be nil.
func NewTimer(h *Histogram) *Timer {
	return &Timer{
		start: time.Now(),
		hist:  h,
	}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.hist != nil {
		t.hist.Observe(float64(d.Microseconds()))
	}
	return d
}
