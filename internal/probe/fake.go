package probe

import (
	"context"
	"sync"
	"time"
)

// Gauge tracks how many probes are running at once. One Gauge can be
// shared by many Fakes to observe a whole batch.
type Gauge struct {
	mu     sync.Mutex
	active int
	peak   int
}

func (g *Gauge) enter() {
	g.mu.Lock()
	g.active++
	if g.active > g.peak {
		g.peak = g.active
	}
	g.mu.Unlock()
}

func (g *Gauge) leave() {
	g.mu.Lock()
	g.active--
	g.mu.Unlock()
}

// Peak returns the highest number of simultaneously running probes seen.
func (g *Gauge) Peak() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.peak
}

// Fake is an in-memory Prober with a deterministic fit rule.
type Fake struct {
	FitsAt  func(scale int) bool // Nil means nothing fits.
	ErrorAt func(scale int) bool // Scales that report Error instead.
	Delay   time.Duration        // Simulated export time.
	Gauge   *Gauge               // Optional shared concurrency gauge.

	mu    sync.Mutex
	calls []int
}

// FitsUpTo returns a Fake that fits at every scale <= limit.
func FitsUpTo(limit int) *Fake {
	return &Fake{FitsAt: func(scale int) bool { return scale <= limit }}
}

// Probe implements Prober.
func (f *Fake) Probe(ctx context.Context, scale int) Outcome {
	if f.Gauge != nil {
		f.Gauge.enter()
		defer f.Gauge.leave()
	}
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return f.record(scale, Failed("cancelled", ctx.Err()))
		}
	}

	switch {
	case f.ErrorAt != nil && f.ErrorAt(scale):
		return f.record(scale, Failed("simulated failure", nil))
	case f.FitsAt != nil && f.FitsAt(scale):
		return f.record(scale, Fitted())
	default:
		return f.record(scale, Overflowed("simulated overflow"))
	}
}

func (f *Fake) record(scale int, out Outcome) Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, scale)
	f.mu.Unlock()
	return out
}

// Calls returns the scales probed so far, in order.
func (f *Fake) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}
