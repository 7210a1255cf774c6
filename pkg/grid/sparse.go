package grid

import (
	"github.com/zyedidia/generic/mapset"

	"mad-life/pkg/core"
	"mad-life/pkg/rules"
)

// Diff lists the cells whose state changed in the generation that produced a
// grid. The sets are shared with the grid and must not be modified.
type Diff struct {
	Born mapset.Set[core.Coord]
	Died mapset.Set[core.Coord]
}

func emptyDiff() Diff {
	return Diff{Born: mapset.New[core.Coord](), Died: mapset.New[core.Coord]()}
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool { return d.Born.Size() == 0 && d.Died.Size() == 0 }

// Sparse stores the set of alive coordinates on a torus.
type Sparse struct {
	size  core.Size
	alive mapset.Set[core.Coord]
	diff  Diff
	hash  lazyHash
}

// NewSparse builds a toroidal grid with the given cells alive. Cells are
// wrapped onto the torus.
func NewSparse(w, h int, cells ...core.Coord) (*Sparse, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	s := &Sparse{size: core.Size{W: w, H: h}, alive: mapset.New[core.Coord](), diff: emptyDiff()}
	for _, c := range cells {
		s.alive.Put(s.size.Wrap(c))
	}
	return s, nil
}

func (s *Sparse) Kind() Kind      { return KindSparse }
func (s *Sparse) Size() core.Size { return s.size }

func (s *Sparse) State(c core.Coord) (State, bool) {
	if !s.size.Contains(c) {
		return Dead, false
	}
	return stateOf(s.alive.Has(c)), true
}

func (s *Sparse) IsAlive(c core.Coord) bool { return s.alive.Has(c) }

func (s *Sparse) AllDead() bool { return s.alive.Size() == 0 }

func (s *Sparse) Population() int { return s.alive.Size() }

func (s *Sparse) EachAlive(fn func(core.Coord)) { s.alive.Each(fn) }

// Diff returns the cells born and died relative to the previous generation.
func (s *Sparse) Diff() Diff { return s.diff }

// WithCells returns a copy with the given cells (wrapped) set alive. Its Diff
// reports the cells that were not already alive as born.
func (s *Sparse) WithCells(cells ...core.Coord) Grid {
	next := &Sparse{size: s.size, alive: mapset.New[core.Coord](), diff: emptyDiff()}
	s.alive.Each(next.alive.Put)
	for _, c := range cells {
		c = s.size.Wrap(c)
		if !next.alive.Has(c) {
			next.alive.Put(c)
			next.diff.Born.Put(c)
		}
	}
	return next
}

// Tally counts, for every coordinate adjacent to at least one alive cell, how
// many alive neighbors it has.
func (s *Sparse) Tally() map[core.Coord]int {
	tally := make(map[core.Coord]int, s.alive.Size()*4)
	s.alive.Each(func(c core.Coord) {
		for _, n := range s.size.ToroidalNeighbors(c) {
			tally[n]++
		}
	})
	return tally
}

// Advance implements Grid. Only coordinates with at least one alive neighbor
// are evaluated, plus alive cells with none. Rules that birth on zero
// neighbors fall back to visiting the whole torus.
func (s *Sparse) Advance(r rules.RuleSet) Grid {
	tally := s.Tally()
	next := &Sparse{size: s.size, alive: mapset.New[core.Coord](), diff: emptyDiff()}

	for c, n := range tally {
		was := s.alive.Has(c)
		if r.Next(was, n) {
			next.alive.Put(c)
			if !was {
				next.diff.Born.Put(c)
			}
		}
	}
	s.alive.Each(func(c core.Coord) {
		if _, counted := tally[c]; !counted && r.Next(true, 0) {
			next.alive.Put(c)
		}
	})
	if r.Next(false, 0) {
		for i := 0; i < s.size.Area(); i++ {
			c := s.size.At(i)
			if _, counted := tally[c]; !counted && !s.alive.Has(c) {
				next.alive.Put(c)
				next.diff.Born.Put(c)
			}
		}
	}

	s.alive.Each(func(c core.Coord) {
		if !next.alive.Has(c) {
			next.diff.Died.Put(c)
		}
	})
	return next
}

func (s *Sparse) Hash() uint64 { return s.hash.get(s) }

func (s *Sparse) Equal(o Grid) bool { return Equal(s, o) }
