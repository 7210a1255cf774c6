// Package rules defines the transition rules applied to every cell on each
// generation.
package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxNeighbors is the size of the Moore neighborhood.
const MaxNeighbors = 8

// RuleSet maps a cell's current state and its live-neighbor count to its next
// state. Implementations must be pure.
type RuleSet interface {
	Next(alive bool, neighbors int) bool
}

// Func adapts a plain function into a RuleSet.
type Func func(alive bool, neighbors int) bool

// Next calls f.
func (f Func) Next(alive bool, neighbors int) bool { return f(alive, neighbors) }

// BS is a birth/survival rule. Bit n of Birth (Survive) is set when a dead
// (live) cell with n live neighbors is alive in the next generation.
type BS struct {
	Birth   uint16
	Survive uint16
}

var (
	// Conway is the standard B3/S23 rule.
	Conway = NewBS([]int{3}, []int{2, 3})
	// HighLife is B36/S23: Conway plus birth on six neighbors.
	HighLife = NewBS([]int{3, 6}, []int{2, 3})
)

// NewBS builds a rule from neighbor-count lists. Counts outside 0..8 are
// ignored.
func NewBS(birth, survive []int) BS {
	return BS{Birth: mask(birth), Survive: mask(survive)}
}

func mask(counts []int) uint16 {
	var m uint16
	for _, n := range counts {
		if n >= 0 && n <= MaxNeighbors {
			m |= 1 << n
		}
	}
	return m
}

// Next implements RuleSet.
func (r BS) Next(alive bool, neighbors int) bool {
	if neighbors < 0 || neighbors > MaxNeighbors {
		return false
	}
	if alive {
		return r.Survive&(1<<neighbors) != 0
	}
	return r.Birth&(1<<neighbors) != 0
}

// String renders the rule in B/S notation, e.g. "B36/S23".
func (r BS) String() string {
	var b strings.Builder
	b.WriteByte('B')
	writeCounts(&b, r.Birth)
	b.WriteString("/S")
	writeCounts(&b, r.Survive)
	return b.String()
}

func writeCounts(b *strings.Builder, m uint16) {
	for n := 0; n <= MaxNeighbors; n++ {
		if m&(1<<n) != 0 {
			b.WriteString(strconv.Itoa(n))
		}
	}
}

// ErrUnknownRule is returned by ByName and Parse for unrecognised input.
var ErrUnknownRule = errors.New("rules: unknown rule")

// Parse reads B/S notation such as "B3/S23" or "b36/s23". Either half may be
// empty ("B3/S") but both prefixes are required.
func Parse(s string) (BS, error) {
	birth, survive, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "/")
	if !ok || !strings.HasPrefix(birth, "B") || !strings.HasPrefix(survive, "S") {
		return BS{}, fmt.Errorf("%w: %q is not B/S notation", ErrUnknownRule, s)
	}
	bm, err := parseCounts(birth[1:])
	if err != nil {
		return BS{}, fmt.Errorf("%w: %q: %v", ErrUnknownRule, s, err)
	}
	sm, err := parseCounts(survive[1:])
	if err != nil {
		return BS{}, fmt.Errorf("%w: %q: %v", ErrUnknownRule, s, err)
	}
	return BS{Birth: bm, Survive: sm}, nil
}

func parseCounts(digits string) (uint16, error) {
	var m uint16
	for _, r := range digits {
		if r < '0' || r > '0'+MaxNeighbors {
			return 0, fmt.Errorf("invalid neighbor count %q", r)
		}
		m |= 1 << (r - '0')
	}
	return m, nil
}

// ByName resolves a rule by its common name or B/S notation.
func ByName(name string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "conway", "life", "standard":
		return Conway, nil
	case "highlife", "extended":
		return HighLife, nil
	}
	return Parse(name)
}
