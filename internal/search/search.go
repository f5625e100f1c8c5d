// Package search finds the largest export scale at which a project still
// fits on a single atlas page.
//
// The search is a bisection over even percentages. Scales are assumed to be
// monotonic: if a scale fits, every smaller one fits too. Error outcomes
// narrow the range the same way DoesNotFit does but stay visible in the
// returned Attempts.
package search

import (
	"context"

	"github.com/backmassage/spinefit/internal/probe"
)

// NoScale marks the absence of a fitting scale.
const NoScale = -1

// Domain is the inclusive scale range to search, in percent.
type Domain struct {
	Min int
	Max int
}

// DefaultDomain is [10, 100].
func DefaultDomain() Domain { return Domain{Min: 10, Max: 100} }

// Quantize rounds Min up and Max down to even values.
func (d Domain) Quantize() Domain {
	if d.Min%2 != 0 {
		d.Min++
	}
	if d.Max%2 != 0 {
		d.Max--
	}
	return d
}

// Empty reports whether the quantized domain contains no probe-able value.
func (d Domain) Empty() bool {
	q := d.Quantize()
	return q.Min > q.Max
}

// Policy tunes the search without changing its result for monotonic projects.
type Policy struct {
	// TryMaxFirst probes Max before bisecting. Most projects fit at full
	// size, so this usually finishes in one export.
	TryMaxFirst bool
}

// DefaultPolicy enables the fast path.
func DefaultPolicy() Policy { return Policy{TryMaxFirst: true} }

// Status is the terminal state of a search.
type Status int

const (
	Succeeded   Status = iota // Scale fits and was confirmed.
	Exhausted                 // No probed scale fit.
	Unconfirmed               // A fit was seen but the final confirmation failed.
	Cancelled                 // The context ended before the search finished.
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "no scale fits"
	case Unconfirmed:
		return "final export failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Attempt is one probe made during a search.
type Attempt struct {
	Scale   int
	Outcome probe.Outcome
}

// Result is the outcome of Run.
type Result struct {
	Status   Status
	Scale    int // NoScale unless Status is Succeeded.
	Attempts []Attempt
}

// Succeeded reports whether a confirmed scale was found.
func (r Result) Succeeded() bool { return r.Status == Succeeded }

// ErrorProbes counts attempts that ended in an unexpected error.
func (r Result) ErrorProbes() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Outcome.Kind == probe.Error {
			n++
		}
	}
	return n
}

// LastError returns the most recent Error outcome, if any.
func (r Result) LastError() (probe.Outcome, bool) {
	for i := len(r.Attempts) - 1; i >= 0; i-- {
		if r.Attempts[i].Outcome.Kind == probe.Error {
			return r.Attempts[i].Outcome, true
		}
	}
	return probe.Outcome{}, false
}

// Run searches d for the largest even scale that p reports as Fits. Probes
// are issued strictly one after another. The scale returned on success is
// always the scale of the final probe, so the artifact on disk belongs to it.
func Run(ctx context.Context, p probe.Prober, d Domain, pol Policy) Result {
	res := Result{Status: Exhausted, Scale: NoScale}
	if d.Empty() {
		return res
	}
	d = d.Quantize()

	try := func(scale int) (probe.Kind, bool) {
		if ctx.Err() != nil {
			return probe.Error, false
		}
		out := p.Probe(ctx, scale)
		if ctx.Err() != nil {
			return probe.Error, false
		}
		res.Attempts = append(res.Attempts, Attempt{Scale: scale, Outcome: out})
		return out.Kind, true
	}
	cancelled := func() Result {
		res.Status = Cancelled
		res.Scale = NoScale
		return res
	}

	high := d.Max
	if pol.TryMaxFirst {
		kind, ok := try(d.Max)
		if !ok {
			return cancelled()
		}
		if kind == probe.Fits {
			res.Status = Succeeded
			res.Scale = d.Max
			return res
		}
		high = d.Max - 2
	}

	low, best := d.Min, NoScale
	for low <= high {
		mid := evenMid(low, high)
		kind, ok := try(mid)
		if !ok {
			return cancelled()
		}
		if kind == probe.Fits {
			best = mid
			low = mid + 2
		} else {
			high = mid - 2
		}
	}

	if best == NoScale {
		return res
	}

	// Re-export at best: the folder still holds the last bisection probe's output.
	kind, ok := try(best)
	if !ok {
		return cancelled()
	}
	if kind != probe.Fits {
		res.Status = Unconfirmed
		return res
	}
	res.Status = Succeeded
	res.Scale = best
	return res
}

// evenMid returns the midpoint of [low, high] rounded down to even and
// clamped to low. Both bounds are even.
func evenMid(low, high int) int {
	mid := (low + high) / 2
	mid -= mid % 2
	if mid < low {
		mid = low
	}
	return mid
}
