package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
)

type Snapshot struct {
	DurationMs    int64
	TotalBytes    int64
	BytesCompared int64
	Chunks        int64
}

func (s *Stats) Snapshot() Snapshot {
	dur := s.Duration()

	return Snapshot{
		DurationMs:    dur.Milliseconds(),
		TotalBytes:    atomic.LoadInt64(&s.TotalBytes),
		BytesCompared: atomic.LoadInt64(&s.BytesCompared),
		Chunks:        atomic.LoadInt64(&s.Chunks),
	}
}

func Print(w io.Writer, s *Stats) {
	snap := s.Snapshot()

	_, _ = fmt.Fprintln(w, "--- stats ---")
	_, _ = fmt.Fprintln(w, "duration_ms:", snap.DurationMs)
	_, _ = fmt.Fprintln(w, "total_bytes:", snap.TotalBytes)
	_, _ = fmt.Fprintln(w, "bytes_compared:", snap.BytesCompared)
	_, _ = fmt.Fprintln(w, "chunks:", snap.Chunks)

	if snap.DurationMs > 0 {
		secs := float64(snap.DurationMs) / 1000.0
		bps := float64(snap.BytesCompared) / secs
		_, _ = fmt.Fprintln(w, "throughput_bytes_per_sec:", bps)
		_, _ = fmt.Fprintln(w, "throughput_mb_per_sec:", bps/1_000_000.0)
	}
}
