// Package grid holds the cell populations and the generation-advance engine.
//
// Two representations share the Grid interface: Dense stores every cell in a
// row-major slice and counts neighbors with clamped (bounded) addressing,
// Sparse stores only the alive coordinates on a torus and reports the cells
// that changed on each advance. Grids are immutable once built; Advance and
// WithCells always return a new value, so a grid can be shared freely between
// the history tracker and a renderer.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"mad-life/pkg/core"
	"mad-life/pkg/rules"
)

// State is the two-valued cell state.
type State uint8

const (
	Dead State = iota
	Alive
)

func (s State) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

func stateOf(alive bool) State {
	if alive {
		return Alive
	}
	return Dead
}

// Kind selects a grid representation.
type Kind string

const (
	KindDense  Kind = "dense"
	KindSparse Kind = "sparse"
)

// ErrInvalidSize is returned when a grid is requested with a non-positive
// dimension.
var ErrInvalidSize = errors.New("grid: width and height must be positive")

// ErrUnknownKind is returned by ParseKind and New for unsupported kinds.
var ErrUnknownKind = errors.New("grid: unknown representation")

// Grid is the capability shared by every representation.
type Grid interface {
	Kind() Kind
	Size() core.Size

	// State returns the state of c. ok is false when c lies outside the grid.
	State(c core.Coord) (s State, ok bool)
	IsAlive(c core.Coord) bool
	AllDead() bool
	Population() int
	// EachAlive visits alive cells in no particular order.
	EachAlive(fn func(core.Coord))

	// Advance computes the next generation without modifying the receiver.
	Advance(r rules.RuleSet) Grid
	// WithCells returns a copy with the given cells set alive.
	WithCells(cells ...core.Coord) Grid

	// Hash is a content hash: equal grids always hash equally.
	Hash() uint64
	// Equal reports whether both grids have the same size and alive set.
	Equal(o Grid) bool
}

// Differ is implemented by grids that track which cells changed in the
// generation that produced them.
type Differ interface {
	Diff() Diff
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	return nil
}

// ParseKind resolves a representation name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDense, KindSparse:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New builds an empty grid of the given representation.
func New(kind Kind, w, h int) (Grid, error) {
	switch kind {
	case KindDense:
		return NewDense(w, h)
	case KindSparse:
		return NewSparse(w, h)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Equal compares two grids by content, regardless of representation.
func Equal(a, b Grid) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Size() != b.Size() || a.Population() != b.Population() {
		return false
	}
	if a.Hash() != b.Hash() {
		return false
	}
	same := true
	a.EachAlive(func(c core.Coord) {
		if same && !b.IsAlive(c) {
			same = false
		}
	})
	return same
}

// Bytes renders g as a row-major 0/1 buffer suitable for a full-frame blit.
func Bytes(g Grid) []uint8 {
	s := g.Size()
	buf := make([]uint8, s.Area())
	g.EachAlive(func(c core.Coord) { buf[s.Index(c)] = 1 })
	return buf
}
