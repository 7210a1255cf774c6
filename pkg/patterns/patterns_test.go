package patterns

import (
	"testing"

	"mad-life/pkg/core"
	"mad-life/pkg/grid"
	"mad-life/pkg/rules"
)

func stamp(t *testing.T, kind grid.Kind, size core.Size, p Pattern, anchor core.Coord) grid.Grid {
	t.Helper()
	g, err := grid.New(kind, size.W, size.H)
	if err != nil {
		t.Fatal(err)
	}
	return g.WithCells(p.At(anchor)...)
}

func TestStillLifeAndOscillatorPeriods(t *testing.T) {
	cases := []struct {
		name   string
		shape  Shape
		period int
	}{
		{"block", Block, 1},
		{"blinker", Blinker, 2},
		{"beacon", Beacon, 2},
		{"toad", Toad, 2},
	}
	for _, tc := range cases {
		for _, kind := range []grid.Kind{grid.KindDense, grid.KindSparse} {
			g := stamp(t, kind, core.Size{W: 10, H: 10}, tc.shape, core.C(3, 3))
			next := g
			for i := 0; i < tc.period; i++ {
				next = next.Advance(rules.Conway)
				if i < tc.period-1 && next.Equal(g) {
					t.Fatalf("%s/%s: repeated after %d generations, want period %d", tc.name, kind, i+1, tc.period)
				}
			}
			if !next.Equal(g) {
				t.Fatalf("%s/%s: not back after %d generations\n%s", tc.name, kind, tc.period, grid.Format(next))
			}
		}
	}
}

func TestSpaceshipsTranslate(t *testing.T) {
	size := core.Size{W: 16, H: 16}
	g := stamp(t, grid.KindSparse, size, Glider, core.C(2, 2))
	for i := 0; i < 4; i++ {
		g = g.Advance(rules.Conway)
	}
	if want := stamp(t, grid.KindSparse, size, Glider, core.C(3, 3)); !g.Equal(want) {
		t.Fatalf("glider should move by (1,1)\n%s", grid.Format(g))
	}

	l := stamp(t, grid.KindSparse, size, LWSS, core.C(8, 6))
	for i := 0; i < 4; i++ {
		l = l.Advance(rules.Conway)
	}
	if want := stamp(t, grid.KindSparse, size, LWSS, core.C(6, 6)); !l.Equal(want) {
		t.Fatalf("lwss should move two cells left\n%s", grid.Format(l))
	}
}

func TestBounds(t *testing.T) {
	if got := LWSS.Bounds(); got != (core.Size{W: 5, H: 4}) {
		t.Fatalf("LWSS bounds = %v", got)
	}
}

func TestPlacement(t *testing.T) {
	p, err := ParsePlacement("Glider@4,2")
	if err != nil {
		t.Fatal(err)
	}
	if p.X != 4 || p.Y != 2 || p.String() != "Glider@4,2" {
		t.Fatalf("unexpected placement %+v", p)
	}
	cells, err := p.Cells()
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != len(Glider) || cells[0] != core.C(5, 2) {
		t.Fatalf("cells = %v", cells)
	}
	for _, bad := range []string{"glider", "glider@x,y", "pulsar@1,1"} {
		if _, err := ParsePlacement(bad); err == nil {
			t.Fatalf("ParsePlacement(%q) should fail", bad)
		}
	}
}
