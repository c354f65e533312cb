// Package progress draws a byte-based progress bar for a running comparison.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CountersFn reports the bytes and chunks compared so far. It is called from
// the bar's own goroutine and must be safe for that.
type CountersFn func() (bytesCompared, chunks int64)

// Bar renders progress from a single goroutine. Byte updates arrive over a
// channel and the description is refreshed once per second.
type Bar struct {
	bar      *progressbar.ProgressBar
	updates  chan int64
	done     chan struct{}
	counters CountersFn

	prevBytes int64
	prevAt    time.Time
}

func New(w io.Writer, totalBytes int64, counters CountersFn) *Bar {
	b := &Bar{
		updates:  make(chan int64, 1024),
		done:     make(chan struct{}),
		counters: counters,
		prevAt:   time.Now(),
	}

	b.bar = progressbar.NewOptions64(
		totalBytes,
		progressbar.OptionSetWriter(w),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetDescription("comparing"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(120*time.Millisecond),
	)
	_ = b.bar.RenderBlank()

	go b.run()
	return b
}

func (b *Bar) run() {
	defer close(b.done)

	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for {
		select {
		case n, ok := <-b.updates:
			if !ok {
				_ = b.bar.Finish()
				return
			}
			_ = b.bar.Add64(n)
		case now := <-tick.C:
			b.describe(now)
		}
	}
}

func (b *Bar) AddBytes(n int64) {
	if n > 0 {
		b.updates <- n
	}
}

// Close drains pending updates and waits for the bar to finish. Call it once,
// after the last AddBytes.
func (b *Bar) Close() {
	close(b.updates)
	<-b.done
}

func (b *Bar) describe(now time.Time) {
	if b.counters == nil {
		return
	}
	compared, chunks := b.counters()
	rate := throughput(compared-b.prevBytes, now.Sub(b.prevAt))
	b.prevBytes, b.prevAt = compared, now

	b.bar.Describe(label(chunks, rate))
}

// throughput returns n bytes over d in MB/s.
func throughput(n int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / 1_000_000.0 / d.Seconds()
}

func label(chunks int64, mbps float64) string {
	return fmt.Sprintf("comparing | chunks=%d | %.1f MB/s", chunks, mbps)
}
