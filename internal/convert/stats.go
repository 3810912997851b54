package convert

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// TimingSnapshot is a point-in-time aggregate of conversion durations.
type TimingSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Timings tracks recent conversion durations within a rolling window.
// Safe for concurrent use by request handlers.
type Timings struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewTimings(maxAge time.Duration) *Timings {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Timings{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (t *Timings) Record(durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)
	t.samples = append(t.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

func (t *Timings) Snapshot() TimingSnapshot {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)
	if len(t.samples) == 0 {
		return TimingSnapshot{}
	}

	values := make([]int64, 0, len(t.samples))
	var sum int64
	for _, sm := range t.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return TimingSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (t *Timings) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.maxAge)
	writeIdx := 0
	for _, sm := range t.samples {
		if !sm.timestamp.Before(cutoff) {
			t.samples[writeIdx] = sm
			writeIdx++
		}
	}
	t.samples = t.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
