package probe

import "context"

// Kind is the classification of one probe.
type Kind int

const (
	// Fits: the export produced exactly one page.
	Fits Kind = iota
	// DoesNotFit: the atlas overflowed one page at this scale.
	DoesNotFit
	// Error: anything else (crash, bad config, license, unexpected output).
	Error
)

func (k Kind) String() string {
	switch k {
	case Fits:
		return "fits"
	case DoesNotFit:
		return "does not fit"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single probe.
type Outcome struct {
	Kind   Kind
	Detail string // Captured tool output or a short explanation.
	Err    error  // Set for Error outcomes when an underlying error exists.
}

// Fitted returns a Fits outcome.
func Fitted() Outcome { return Outcome{Kind: Fits} }

// Overflowed returns a DoesNotFit outcome.
func Overflowed(detail string) Outcome { return Outcome{Kind: DoesNotFit, Detail: detail} }

// Failed returns an Error outcome.
func Failed(detail string, err error) Outcome {
	return Outcome{Kind: Error, Detail: detail, Err: err}
}

// Prober runs one export at scale (percent) and classifies it. Calls for
// the same job are always sequential.
type Prober interface {
	Probe(ctx context.Context, scale int) Outcome
}

// Func adapts a plain function to Prober.
type Func func(ctx context.Context, scale int) Outcome

// Probe calls f.
func (f Func) Probe(ctx context.Context, scale int) Outcome { return f(ctx, scale) }
