package http

import (
	"context"
	"crypto/tls"
	"net/http/httptrace"
	"sync"
	"time"
)

// TimingInfo stores timing information for a sent request.
// Phase durations stay zero when the transport does not report them, for
// example with a reused connection or a transport not built on net/http.
type TimingInfo struct {
	// StartTime is when the request was handed to the transport
	StartTime time.Time

	// DNSLookupTime is the time spent looking up the DNS address
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing a TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent performing the TLS handshake (for HTTPS)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is the time from the last completed connection phase to the first response byte
	TimeToFirstByte time.Duration

	// TotalTime is the time until the transport returned the response headers
	TotalTime time.Duration
}

// timingTracer collects httptrace callbacks, which may fire on transport goroutines.
type timingTracer struct {
	mu     sync.Mutex
	start  time.Time
	timing TimingInfo

	dnsStart, connectStart, tlsStart time.Time
	dnsDone, connectDone             bool
	lastPhaseEnd                     time.Time
}

func newTimingTracer() *timingTracer {
	now := time.Now()
	return &timingTracer{
		start:        now,
		timing:       TimingInfo{StartTime: now},
		lastPhaseEnd: now,
	}
}

func (t *timingTracer) attach(ctx context.Context) context.Context {
	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			t.mu.Lock()
			t.dnsStart = time.Now()
			t.mu.Unlock()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			t.mu.Lock()
			defer t.mu.Unlock()
			end := time.Now()
			t.timing.DNSLookupTime = end.Sub(t.dnsStart)
			t.dnsDone = true
			t.lastPhaseEnd = end
		},
		ConnectStart: func(network, addr string) {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.dnsDone || t.dnsStart.IsZero() {
				t.connectStart = time.Now()
			}
		},
		ConnectDone: func(network, addr string, err error) {
			t.mu.Lock()
			defer t.mu.Unlock()
			if err == nil && !t.connectStart.IsZero() {
				end := time.Now()
				t.timing.TCPConnectTime = end.Sub(t.connectStart)
				t.connectDone = true
				t.lastPhaseEnd = end
			}
		},
		TLSHandshakeStart: func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.connectDone {
				t.tlsStart = time.Now()
			}
		},
		TLSHandshakeDone: func(_ tls.ConnectionState, err error) {
			t.mu.Lock()
			defer t.mu.Unlock()
			if err == nil && !t.tlsStart.IsZero() {
				end := time.Now()
				t.timing.TLSHandshakeTime = end.Sub(t.tlsStart)
				t.lastPhaseEnd = end
			}
		},
		GotFirstResponseByte: func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.timing.TimeToFirstByte = time.Since(t.lastPhaseEnd)
		},
	}
	return httptrace.WithClientTrace(ctx, trace)
}

// finish stamps the total time and returns a snapshot.
func (t *timingTracer) finish() TimingInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timing.TotalTime = time.Since(t.start)
	return t.timing
}
