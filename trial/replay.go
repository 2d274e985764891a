package trial

import (
	"context"

	"github.com/adammck/grfm"
	"github.com/adammck/grfm/gait"
)

// Summary counts what happened during a replay.
type Summary struct {
	Samples    int
	NotReady   int
	Violations int
}

// Replay solves every sample of a trial in order on a fresh state, passing
// each output to emit. The engine must have been created with d as its
// detector. It stops at the first error from the engine or from emit, or when
// ctx is done.
func Replay(ctx context.Context, e *grfm.Engine, d *gait.Recorded, samples []Sample, emit func(grfm.Output) error) (Summary, error) {
	var sum Summary
	st := e.NewState()

	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		d.Update(s.Signals)
		out, err := e.Solve(st, s.Input)
		if err != nil {
			return sum, err
		}

		sum.Samples++
		if !s.Signals.Ready {
			sum.NotReady++
		}
		if out.Violation != nil {
			sum.Violations++
		}

		if err := emit(out); err != nil {
			return sum, err
		}
	}

	return sum, nil
}
