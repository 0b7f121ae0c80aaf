// Package stats summarizes latencies of repeated requests.
package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	histogramMin     = 1                 // 1µs
	histogramMax     = 10 * 60 * 1000000 // 10m in µs
	histogramSigFigs = 3
)

// LatencyRecorder accumulates request latencies in an HDR histogram.
// It is not safe for concurrent use.
type LatencyRecorder struct {
	hist      *hdrhistogram.Histogram
	successes int64
	failures  int64
	errors    int64
}

// Summary is a point-in-time view of a LatencyRecorder.
type Summary struct {
	Count     int64
	Successes int64
	Failures  int64
	Errors    int64
	Min       time.Duration
	Max       time.Duration
	Mean      time.Duration
	P50       time.Duration
	P90       time.Duration
	P95       time.Duration
	P99       time.Duration
}

// NewLatencyRecorder creates an empty recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds the latency of a request that produced a response.
// success is false for 4xx and 5xx statuses.
func (r *LatencyRecorder) Record(d time.Duration, success bool) {
	micros := d.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}
	_ = r.hist.RecordValue(micros)

	if success {
		r.successes++
	} else {
		r.failures++
	}
}

// RecordError counts a request that failed before a response arrived.
// Errors carry no latency.
func (r *LatencyRecorder) RecordError() {
	r.errors++
}

// Summary returns the current statistics.
func (r *LatencyRecorder) Summary() Summary {
	s := Summary{
		Count:     r.hist.TotalCount(),
		Successes: r.successes,
		Failures:  r.failures,
		Errors:    r.errors,
	}
	if s.Count == 0 {
		return s
	}

	s.Min = micros(r.hist.Min())
	s.Max = micros(r.hist.Max())
	s.Mean = micros(int64(r.hist.Mean()))
	s.P50 = micros(r.hist.ValueAtQuantile(50))
	s.P90 = micros(r.hist.ValueAtQuantile(90))
	s.P95 = micros(r.hist.ValueAtQuantile(95))
	s.P99 = micros(r.hist.ValueAtQuantile(99))
	return s
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
