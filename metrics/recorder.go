// Package metrics aggregates call latencies and outcomes using HDR
// histograms for accurate percentile calculation.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder collects per-method latency histograms and outcome counters.
//
// Recorder is safe for concurrent use: counters use atomic operations and
// histograms are mutex protected.
type Recorder struct {
	// Range: 1 microsecond to 1 hour, 3 significant figures
	hists   map[string]*hdrhistogram.Histogram
	histsMu sync.Mutex

	total   atomic.Int64
	success atomic.Int64
	failure atomic.Int64
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{hists: make(map[string]*hdrhistogram.Histogram)}
}

// Record registers one completed call for a method.
func (r *Recorder) Record(method string, latency time.Duration, failed bool) {
	r.total.Add(1)
	if failed {
		r.failure.Add(1)
	} else {
		r.success.Add(1)
	}

	r.histsMu.Lock()
	defer r.histsMu.Unlock()
	h, ok := r.hists[method]
	if !ok {
		h = hdrhistogram.New(1, 3_600_000_000, 3)
		r.hists[method] = h
	}
	// Out-of-range values are dropped rather than failing the call path.
	_ = h.RecordValue(latency.Microseconds())
}

// LatencySummary holds percentile latencies for one method.
type LatencySummary struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Snapshot is a point-in-time view of everything recorded so far.
type Snapshot struct {
	Total   int64
	Success int64
	Failure int64
	Latency map[string]LatencySummary
}

// Snapshot returns the current counters and per-method percentiles.
func (r *Recorder) Snapshot() Snapshot {
	s := Snapshot{
		Total:   r.total.Load(),
		Success: r.success.Load(),
		Failure: r.failure.Load(),
		Latency: make(map[string]LatencySummary),
	}

	r.histsMu.Lock()
	defer r.histsMu.Unlock()
	for method, h := range r.hists {
		s.Latency[method] = LatencySummary{
			Count: h.TotalCount(),
			P50:   time.Duration(h.ValueAtQuantile(50)) * time.Microsecond,
			P95:   time.Duration(h.ValueAtQuantile(95)) * time.Microsecond,
			P99:   time.Duration(h.ValueAtQuantile(99)) * time.Microsecond,
			Max:   time.Duration(h.Max()) * time.Microsecond,
		}
	}
	return s
}
