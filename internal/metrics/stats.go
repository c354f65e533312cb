package metrics

import (
	"sync/atomic"
	"time"
)

// Stats collects counters for one comparison. Observe and Counters may be
// called from any goroutine; Start, Stop and Snapshot belong to the goroutine
// that owns the comparison.
type Stats struct {
	TotalBytes int64

	BytesCompared int64
	Chunks        int64

	Started  time.Time
	Finished time.Time
}

func (s *Stats) Start() { s.Started = time.Now() }
func (s *Stats) Stop()  { s.Finished = time.Now() }
func (s *Stats) Duration() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// Observe records one compared chunk of n bytes.
func (s *Stats) Observe(n int64) {
	atomic.AddInt64(&s.BytesCompared, n)
	atomic.AddInt64(&s.Chunks, 1)
}

// Counters returns the bytes and chunks observed so far.
func (s *Stats) Counters() (bytesCompared, chunks int64) {
	return atomic.LoadInt64(&s.BytesCompared), atomic.LoadInt64(&s.Chunks)
}
