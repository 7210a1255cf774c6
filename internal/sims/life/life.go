// Package life drives a Life-family automaton: it owns the current
// generation, feeds each one to a history tracker and decides when the run is
// over.
package life

import (
	"fmt"

	"mad-life/internal/core"
	engine "mad-life/pkg/core"
	"mad-life/pkg/grid"
	"mad-life/pkg/history"
	"mad-life/pkg/rules"
)

// Reason explains why a run stopped.
type Reason int

const (
	// ReasonNone means the simulation can still advance.
	ReasonNone Reason = iota
	// ReasonAllDead is reported once the population is empty.
	ReasonAllDead
	// ReasonRepeat is reported when the current generation matches one kept
	// in the history window.
	ReasonRepeat
	// ReasonMaxGenerations is reported when the configured limit is reached.
	ReasonMaxGenerations
	// ReasonCanceled is reported by Run when its context ends first.
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonAllDead:
		return "all cells dead"
	case ReasonRepeat:
		return "loop detected"
	case ReasonMaxGenerations:
		return "generation limit reached"
	case ReasonCanceled:
		return "canceled"
	}
	return "running"
}

// Life implements core.Sim on top of a grid.Grid.
type Life struct {
	cfg     Config
	name    string
	kind    grid.Kind
	rules   rules.RuleSet
	history *history.Tracker

	grid       grid.Grid
	generation int
	reason     Reason

	cells    []uint8
	diff     grid.Diff
	hasDiff  bool
	seedUsed int64
}

// New validates cfg and returns a seeded simulation.
func New(cfg Config) (*Life, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, _ := grid.ParseKind(cfg.Grid)
	rule, _ := rules.ByName(cfg.Rule)
	policy, _ := history.ParsePolicy(cfg.HistoryPolicy)
	tracker, err := history.New(cfg.History, policy)
	if err != nil {
		return nil, err
	}
	l := &Life{cfg: cfg, name: "life", kind: kind, rules: rule, history: tracker}
	if err := l.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return l.name }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.grid.Size() }

// Cells exposes the current generation as a row-major 0/1 buffer. The slice
// is reused between steps.
func (l *Life) Cells() []uint8 { return l.cells }

// Grid returns the current generation.
func (l *Life) Grid() grid.Grid { return l.grid }

// Rules returns the active rule set.
func (l *Life) Rules() rules.RuleSet { return l.rules }

// History exposes the repeat-detection window.
func (l *Life) History() *history.Tracker { return l.history }

// Generation counts the advances since the last reset.
func (l *Life) Generation() int { return l.generation }

// Halted reports why the run stopped, if it has.
func (l *Life) Halted() (Reason, bool) { return l.reason, l.reason != ReasonNone }

// LastDiff returns the cells changed by the most recent step. ok is false for
// representations that do not track changes, or before the first step.
func (l *Life) LastDiff() (grid.Diff, bool) { return l.diff, l.hasDiff }

// Status implements core.StatusProvider.
func (l *Life) Status() core.Status {
	return core.Status{
		Generation: l.generation,
		Population: l.grid.Population(),
		Halted:     l.reason != ReasonNone,
		Reason:     l.reason.String(),
	}
}

// Reset rebuilds the initial population. A zero seed reuses the configured
// one.
func (l *Life) Reset(seed int64) {
	// Validated dimensions and kind cannot fail here.
	_ = l.reset(seed)
}

func (l *Life) reset(seed int64) error {
	if seed == 0 {
		seed = l.cfg.Seed
	}
	g, err := grid.Random(l.kind, l.cfg.Width, l.cfg.Height, l.cfg.Density, engine.NewRNG(seed))
	if err != nil {
		return err
	}
	for _, p := range l.cfg.Patterns {
		cells, err := p.Cells()
		if err != nil {
			return fmt.Errorf("life: place %s: %w", p, err)
		}
		g = g.WithCells(cells...)
	}
	if d, ok := g.(*grid.Dense); ok && l.cfg.Workers > 1 {
		g = d.WithWorkers(l.cfg.Workers)
	}
	l.grid = g
	l.seedUsed = seed
	l.generation = 0
	l.reason = ReasonNone
	l.history.Reset()
	l.cells = grid.Bytes(g)
	l.diff, l.hasDiff = grid.Diff{}, false
	return nil
}

// Check evaluates the termination conditions against the current generation
// without advancing.
func (l *Life) Check() Reason {
	switch {
	case l.grid.AllDead():
		return ReasonAllDead
	case l.history.Contains(l.grid):
		return ReasonRepeat
	case l.cfg.MaxGenerations > 0 && l.generation >= l.cfg.MaxGenerations:
		return ReasonMaxGenerations
	}
	return ReasonNone
}

// Step advances by one generation unless the run has stopped. The current
// generation is recorded in history before the next one is computed.
func (l *Life) Step() {
	if l.reason != ReasonNone {
		return
	}
	if r := l.Check(); r != ReasonNone {
		l.reason = r
		return
	}
	l.history.Insert(l.grid)
	next := l.grid.Advance(l.rules)
	l.commit(next)
}

func (l *Life) commit(next grid.Grid) {
	l.grid = next
	l.generation++
	if d, ok := next.(grid.Differ); ok {
		diff := d.Diff()
		size := next.Size()
		diff.Born.Each(func(c engine.Coord) { l.cells[size.Index(c)] = 1 })
		diff.Died.Each(func(c engine.Coord) { l.cells[size.Index(c)] = 0 })
		l.diff, l.hasDiff = diff, true
		return
	}
	copy(l.cells, grid.Bytes(next))
	l.diff, l.hasDiff = grid.Diff{}, false
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(cfg))
	})
	core.Register("highlife", func(cfg map[string]string) (core.Sim, error) {
		c := DefaultConfig()
		c.Rule = "highlife"
		c.Apply(cfg)
		l, err := New(c)
		if err != nil {
			return nil, err
		}
		l.name = "highlife"
		return l, nil
	})
}
