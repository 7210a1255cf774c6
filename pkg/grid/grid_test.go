package grid

import (
	"errors"
	"slices"
	"testing"

	"mad-life/pkg/core"
	"mad-life/pkg/rules"
)

var kinds = []Kind{KindDense, KindSparse}

func mustNew(t *testing.T, kind Kind, w, h int, cells ...core.Coord) Grid {
	t.Helper()
	g, err := New(kind, w, h)
	if err != nil {
		t.Fatalf("New(%s, %d, %d): %v", kind, w, h, err)
	}
	return g.WithCells(cells...)
}

func aliveList(g Grid) []core.Coord {
	var out []core.Coord
	g.EachAlive(func(c core.Coord) { out = append(out, c) })
	slices.SortFunc(out, core.CompareCoords)
	return out
}

func expectAlive(t *testing.T, g Grid, want ...core.Coord) {
	t.Helper()
	slices.SortFunc(want, core.CompareCoords)
	if got := aliveList(g); !slices.Equal(got, want) {
		t.Fatalf("%s alive = %v, want %v\n%s", g.Kind(), got, want, Format(g))
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, kind := range kinds {
		for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
			if _, err := New(kind, dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
				t.Fatalf("%s %v: err = %v, want ErrInvalidSize", kind, dims, err)
			}
		}
	}
	if _, err := New("hex", 3, 3); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("unknown kind err = %v", err)
	}
}

func TestOutOfRangeQueriesAreAbsent(t *testing.T) {
	for _, kind := range kinds {
		g := mustNew(t, kind, 4, 3, core.C(0, 0), core.C(3, 2))
		for _, c := range []core.Coord{core.C(-1, 0), core.C(0, -1), core.C(4, 0), core.C(0, 3), core.C(10, 10)} {
			if s, ok := g.State(c); ok {
				t.Fatalf("%s: State(%v) = %v, want absent", kind, c, s)
			}
			if g.IsAlive(c) {
				t.Fatalf("%s: IsAlive(%v) should be false", kind, c)
			}
		}
		if s, ok := g.State(core.C(3, 2)); !ok || s != Alive {
			t.Fatalf("%s: State((3,2)) = %v,%v", kind, s, ok)
		}
		if s, ok := g.State(core.C(1, 1)); !ok || s != Dead {
			t.Fatalf("%s: State((1,1)) = %v,%v", kind, s, ok)
		}
	}
}

func TestDenseWithCellsIgnoresOutOfRange(t *testing.T) {
	g := mustNew(t, KindDense, 3, 3, core.C(5, 5), core.C(-1, 1), core.C(1, 1))
	expectAlive(t, g, core.C(1, 1))
}

func TestSparseWithCellsWraps(t *testing.T) {
	g := mustNew(t, KindSparse, 3, 3, core.C(3, 1), core.C(-1, -1))
	expectAlive(t, g, core.C(0, 1), core.C(2, 2))
}

func TestDenseClampedNeighborCount(t *testing.T) {
	g := mustNew(t, KindDense, 4, 4, core.C(3, 3), core.C(1, 0), core.C(0, 1)).(*Dense)
	if n := g.LiveNeighbors(core.C(0, 0)); n != 2 {
		t.Fatalf("corner should only see in-range neighbors, got %d", n)
	}
}

func TestSparseToroidalNeighborCount(t *testing.T) {
	g := mustNew(t, KindSparse, 5, 4, core.C(4, 3)).(*Sparse)
	if n := g.Tally()[core.C(0, 0)]; n != 1 {
		t.Fatalf("(0,0) should count (W-1,H-1) as a neighbor, tally = %d", n)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	for _, kind := range kinds {
		horizontal := []core.Coord{core.C(1, 2), core.C(2, 2), core.C(3, 2)}
		vertical := []core.Coord{core.C(2, 1), core.C(2, 2), core.C(2, 3)}
		g := mustNew(t, kind, 5, 5, horizontal...)

		g1 := g.Advance(rules.Conway)
		expectAlive(t, g1, vertical...)

		g2 := g1.Advance(rules.Conway)
		expectAlive(t, g2, horizontal...)
		if !g2.Equal(g) {
			t.Fatalf("%s: blinker should return to its first phase", kind)
		}
	}
}

func TestFullRowOnThreeByThreeTorus(t *testing.T) {
	// Every cell of a 3x3 torus neighbors all eight others, so a full row
	// fills the board and then starves.
	g := mustNew(t, KindSparse, 3, 3, core.C(1, 1), core.C(2, 1), core.C(3, 1))
	g1 := g.Advance(rules.Conway)
	if g1.Population() != 9 {
		t.Fatalf("expected a full board, got\n%s", Format(g1))
	}
	if g2 := g1.Advance(rules.Conway); !g2.AllDead() {
		t.Fatalf("expected extinction, got\n%s", Format(g2))
	}
}

func TestEmptyGridStaysEmpty(t *testing.T) {
	for _, kind := range kinds {
		for _, dims := range [][2]int{{1, 1}, {3, 3}, {8, 5}, {17, 31}} {
			for _, r := range []rules.RuleSet{rules.Conway, rules.HighLife} {
				g := mustNew(t, kind, dims[0], dims[1])
				for i := 0; i < 5; i++ {
					g = g.Advance(r)
					if !g.AllDead() || g.Population() != 0 {
						t.Fatalf("%s %v: empty grid came alive at generation %d", kind, dims, i+1)
					}
				}
			}
		}
	}
}

func TestIsolatedCellDies(t *testing.T) {
	for _, kind := range kinds {
		g := mustNew(t, kind, 5, 5, core.C(2, 2))
		next := g.Advance(rules.Conway)
		if !next.AllDead() {
			t.Fatalf("%s: isolated cell should die\n%s", kind, Format(next))
		}
		if d, ok := next.(Differ); ok {
			diff := d.Diff()
			if diff.Born.Size() != 0 || diff.Died.Size() != 1 || !diff.Died.Has(core.C(2, 2)) {
				t.Fatalf("%s: diff should report (2,2) as died", kind)
			}
		}
	}
}

func TestStandardRuleOutcomes(t *testing.T) {
	for _, kind := range kinds {
		// The center cell has four live neighbors and dies of overpopulation.
		g := mustNew(t, kind, 7, 7,
			core.C(3, 3), core.C(2, 2), core.C(4, 2), core.C(2, 4), core.C(4, 4))
		next := g.Advance(rules.Conway)
		if next.IsAlive(core.C(3, 3)) {
			t.Fatalf("%s: live cell with four neighbors must die", kind)
		}
		// (3,2) is dead with three live neighbors: (2,2), (4,2), (3,3).
		if !next.IsAlive(core.C(3, 2)) {
			t.Fatalf("%s: dead cell with three neighbors must be born", kind)
		}
	}
}

func TestSparseDiffPartitionsSymmetricDifference(t *testing.T) {
	g, err := Random(KindSparse, 24, 18, 0.35, core.NewRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	for gen := 0; gen < 30; gen++ {
		nextG := g.Advance(rules.Conway)
		next := nextG.(*Sparse)
		diff := next.Diff()

		diff.Born.Each(func(c core.Coord) {
			if diff.Died.Has(c) {
				t.Fatalf("gen %d: %v both born and died", gen, c)
			}
			if !next.IsAlive(c) {
				t.Fatalf("gen %d: born cell %v not alive", gen, c)
			}
			if g.IsAlive(c) {
				t.Fatalf("gen %d: born cell %v was already alive", gen, c)
			}
		})
		diff.Died.Each(func(c core.Coord) {
			if next.IsAlive(c) {
				t.Fatalf("gen %d: died cell %v still alive", gen, c)
			}
			if !g.IsAlive(c) {
				t.Fatalf("gen %d: died cell %v was not alive", gen, c)
			}
		})

		symDiff := 0
		size := g.Size()
		for i := 0; i < size.Area(); i++ {
			c := size.At(i)
			if g.IsAlive(c) != next.IsAlive(c) {
				symDiff++
			}
		}
		if got := diff.Born.Size() + diff.Died.Size(); got != symDiff {
			t.Fatalf("gen %d: diff covers %d cells, symmetric difference has %d", gen, got, symDiff)
		}
		g = next
	}
}

func TestRepresentationsAgreeAwayFromEdges(t *testing.T) {
	glider := []core.Coord{core.C(2, 1), core.C(3, 2), core.C(1, 3), core.C(2, 3), core.C(3, 3)}
	dense := mustNew(t, KindDense, 14, 14, glider...)
	sparse := mustNew(t, KindSparse, 14, 14, glider...)
	for gen := 1; gen <= 16; gen++ {
		dense = dense.Advance(rules.Conway)
		sparse = sparse.Advance(rules.Conway)
		if !Equal(dense, sparse) {
			t.Fatalf("generation %d diverged\ndense:\n%s\nsparse:\n%s", gen, Format(dense), Format(sparse))
		}
	}
	// A glider translates by (1,1) every four generations.
	expectAlive(t, dense,
		core.C(6, 5), core.C(7, 6), core.C(5, 7), core.C(6, 7), core.C(7, 7))
}

func TestZeroNeighborRules(t *testing.T) {
	seeds := rules.NewBS([]int{0}, nil)
	g := mustNew(t, KindSparse, 4, 4)
	g1 := g.Advance(seeds)
	if g1.Population() != 16 {
		t.Fatalf("B0 should fill an empty torus, got %d", g1.Population())
	}
	if g2 := g1.Advance(seeds); !g2.AllDead() {
		t.Fatalf("B0/S on a full torus should die out")
	}

	hermit := rules.NewBS([]int{3}, []int{0})
	for _, kind := range kinds {
		next := mustNew(t, kind, 5, 5, core.C(2, 2)).Advance(hermit)
		expectAlive(t, next, core.C(2, 2))
	}
}

func TestAdvanceDoesNotMutate(t *testing.T) {
	for _, kind := range kinds {
		g := mustNew(t, kind, 5, 5, core.C(1, 2), core.C(2, 2), core.C(3, 2))
		before := aliveList(g)
		hash := g.Hash()
		_ = g.Advance(rules.Conway)
		_ = g.WithCells(core.C(0, 0))
		if !slices.Equal(before, aliveList(g)) || g.Hash() != hash {
			t.Fatalf("%s: receiver changed", kind)
		}
	}
}

func TestDenseParallelMatchesSequential(t *testing.T) {
	g, err := Random(KindDense, 37, 23, 0.4, core.NewRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	seq := g
	par := Grid(g.(*Dense).WithWorkers(4))
	for gen := 0; gen < 10; gen++ {
		seq = seq.Advance(rules.Conway)
		par = par.Advance(rules.Conway)
		if !Equal(seq, par) {
			t.Fatalf("generation %d: parallel advance diverged", gen+1)
		}
	}
	if par.(*Dense).Workers() != 4 {
		t.Fatal("workers should carry over to later generations")
	}
}

func TestContentEquality(t *testing.T) {
	a := mustNew(t, KindSparse, 6, 6, core.C(1, 1), core.C(4, 2), core.C(0, 5))
	b := mustNew(t, KindSparse, 6, 6, core.C(0, 5)).WithCells(core.C(4, 2), core.C(1, 1))
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatal("same content must be equal regardless of insertion order")
	}
	d := mustNew(t, KindDense, 6, 6, core.C(4, 2), core.C(0, 5), core.C(1, 1))
	if !Equal(a, d) || a.Hash() != d.Hash() {
		t.Fatal("equality is by content across representations")
	}
	if a.Equal(a.WithCells(core.C(3, 3))) {
		t.Fatal("different alive sets must not be equal")
	}
	other := mustNew(t, KindSparse, 7, 6, core.C(1, 1), core.C(4, 2), core.C(0, 5))
	if a.Equal(other) {
		t.Fatal("different sizes must not be equal")
	}
	if Equal(a, nil) {
		t.Fatal("nil grid is never equal to a grid")
	}
}

func TestRandomSeeding(t *testing.T) {
	for _, kind := range kinds {
		empty, err := Random(kind, 10, 10, 0, core.NewRNG(1))
		if err != nil {
			t.Fatal(err)
		}
		if !empty.AllDead() {
			t.Fatalf("%s: density 0 should be empty", kind)
		}
		a, _ := Random(kind, 10, 10, 0.5, core.NewRNG(3))
		b, _ := Random(kind, 10, 10, 0.5, core.NewRNG(3))
		if !a.Equal(b) {
			t.Fatalf("%s: same seed should produce the same grid", kind)
		}
		if p := a.Population(); p == 0 || p >= 100 {
			t.Fatalf("%s: implausible population %d for density 0.5", kind, p)
		}
	}
	full, _ := Random(KindDense, 4, 4, 1, core.NewRNG(9))
	if full.Population() != 16 {
		t.Fatalf("dense density 1 should fill the grid, got %d", full.Population())
	}
	sparse, _ := Random(KindSparse, 10, 10, 0.3, core.NewRNG(5))
	if sparse.Population() > 30 {
		t.Fatalf("sparse seeding sampled too many cells: %d", sparse.Population())
	}
}

func TestFormatRoundTrip(t *testing.T) {
	rows := []string{
		".#..",
		"..#.",
		"###.",
	}
	for _, kind := range kinds {
		g, err := FromRows(kind, rows...)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := Format(g), ".#..\n..#.\n###.\n"; got != want {
			t.Fatalf("%s: Format = %q, want %q", kind, got, want)
		}
	}
	if _, err := FromRows(KindDense, "..", "..."); err == nil {
		t.Fatal("ragged rows should be rejected")
	}
}

func TestBytes(t *testing.T) {
	g := mustNew(t, KindSparse, 3, 2, core.C(2, 0), core.C(0, 1))
	if got, want := Bytes(g), []uint8{0, 0, 1, 1, 0, 0}; !slices.Equal(got, want) {
		t.Fatalf("Bytes = %v, want %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Sparse "); err != nil || k != KindSparse {
		t.Fatalf("ParseKind = %v, %v", k, err)
	}
	if _, err := ParseKind("hashlife"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v", err)
	}
}
