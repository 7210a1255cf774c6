package grid

import (
	"fmt"
	"strings"

	"mad-life/pkg/core"
)

// Format draws g as text, one line per row, using '#' for alive cells and
// '.' for dead ones.
func Format(g Grid) string {
	s := g.Size()
	var b strings.Builder
	b.Grow((s.W + 1) * s.H)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if g.IsAlive(core.Coord{X: x, Y: y}) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FromRows builds a grid from a text picture. Every row must have the same
// width; '#', 'O' and '*' mark alive cells, anything else is dead.
func FromRows(kind Kind, rows ...string) (Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	w := len(rows[0])
	var cells []core.Coord
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("grid: row %d has width %d, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			switch row[x] {
			case '#', 'O', '*':
				cells = append(cells, core.Coord{X: x, Y: y})
			}
		}
	}
	g, err := New(kind, w, len(rows))
	if err != nil {
		return nil, err
	}
	return g.WithCells(cells...), nil
}
