package life

import (
	"context"
	"fmt"
	"log"

	"mad-life/internal/core"
	"mad-life/pkg/grid"
)

// Renderer receives every generation produced by Run, starting with the
// initial one. diff is nil for the initial frame and for representations
// that do not track changes.
type Renderer interface {
	Frame(g grid.Grid, generation int, diff *grid.Diff) error
}

// RendererFunc adapts a function into a Renderer.
type RendererFunc func(g grid.Grid, generation int, diff *grid.Diff) error

// Frame calls f.
func (f RendererFunc) Frame(g grid.Grid, generation int, diff *grid.Diff) error {
	return f(g, generation, diff)
}

// Options configures Run. Every field is optional.
type Options struct {
	Renderer Renderer
	Logger   *log.Logger
	// Pace throttles the loop to a fixed number of steps per second.
	Pace *core.FixedStep
}

// Outcome summarises a finished run.
type Outcome struct {
	Reason      Reason
	Generations int
	Population  int
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s after %d generations (population %d)", o.Reason, o.Generations, o.Population)
}

// Run steps l until it stops on its own or ctx is done. A renderer error
// aborts the run and is returned as-is.
func Run(ctx context.Context, l *Life, opts Options) (Outcome, error) {
	emit := func(diff *grid.Diff) error {
		if opts.Renderer == nil {
			return nil
		}
		return opts.Renderer.Frame(l.Grid(), l.Generation(), diff)
	}
	if err := emit(nil); err != nil {
		return l.outcome(ReasonNone), err
	}

	for {
		if err := wait(ctx, opts.Pace); err != nil {
			return l.finish(opts.Logger, ReasonCanceled), nil
		}
		l.Step()
		if r, halted := l.Halted(); halted {
			return l.finish(opts.Logger, r), nil
		}
		var diff *grid.Diff
		if d, ok := l.LastDiff(); ok {
			diff = &d
		}
		if err := emit(diff); err != nil {
			return l.outcome(ReasonNone), err
		}
	}
}

func wait(ctx context.Context, pace *core.FixedStep) error {
	if pace == nil {
		return ctx.Err()
	}
	return pace.Wait(ctx)
}

func (l *Life) outcome(r Reason) Outcome {
	return Outcome{Reason: r, Generations: l.generation, Population: l.grid.Population()}
}

func (l *Life) finish(logger *log.Logger, r Reason) Outcome {
	out := l.outcome(r)
	if logger != nil {
		logger.Printf("%s: %s", l.name, out)
	}
	return out
}
