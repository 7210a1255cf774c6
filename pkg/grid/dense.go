package grid

import (
	"sync"

	"mad-life/pkg/core"
	"mad-life/pkg/rules"
)

// Dense stores every cell in row-major order. Neighbors outside the grid are
// not counted, so edge cells see fewer than eight.
type Dense struct {
	size    core.Size
	cells   []State
	workers int
	hash    lazyHash
}

// NewDense allocates an all-dead dense grid.
func NewDense(w, h int) (*Dense, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	size := core.Size{W: w, H: h}
	return &Dense{size: size, cells: make([]State, size.Area())}, nil
}

func (d *Dense) derive(cells []State) *Dense {
	return &Dense{size: d.size, cells: cells, workers: d.workers}
}

// WithWorkers returns a grid sharing d's cells whose Advance splits rows
// across n goroutines. n <= 1 keeps the scan sequential.
func (d *Dense) WithWorkers(n int) *Dense {
	out := d.derive(d.cells)
	out.workers = n
	return out
}

// Workers reports the configured advance parallelism.
func (d *Dense) Workers() int { return d.workers }

func (d *Dense) Kind() Kind      { return KindDense }
func (d *Dense) Size() core.Size { return d.size }

func (d *Dense) State(c core.Coord) (State, bool) {
	if !d.size.Contains(c) {
		return Dead, false
	}
	return d.cells[d.size.Index(c)], true
}

func (d *Dense) IsAlive(c core.Coord) bool {
	s, ok := d.State(c)
	return ok && s == Alive
}

func (d *Dense) AllDead() bool {
	for _, s := range d.cells {
		if s == Alive {
			return false
		}
	}
	return true
}

func (d *Dense) Population() int {
	n := 0
	for _, s := range d.cells {
		if s == Alive {
			n++
		}
	}
	return n
}

func (d *Dense) EachAlive(fn func(core.Coord)) {
	for i, s := range d.cells {
		if s == Alive {
			fn(d.size.At(i))
		}
	}
}

// WithCells sets the given cells alive. Out-of-range coordinates are ignored.
func (d *Dense) WithCells(cells ...core.Coord) Grid {
	next := d.derive(append([]State(nil), d.cells...))
	for _, c := range cells {
		if d.size.Contains(c) {
			next.cells[d.size.Index(c)] = Alive
		}
	}
	return next
}

// WithState returns a copy with c set to s. Out-of-range coordinates leave
// the copy unchanged.
func (d *Dense) WithState(c core.Coord, s State) *Dense {
	next := d.derive(append([]State(nil), d.cells...))
	if d.size.Contains(c) {
		next.cells[d.size.Index(c)] = s
	}
	return next
}

// LiveNeighbors counts alive cells among the in-range Moore neighbors of c.
func (d *Dense) LiveNeighbors(c core.Coord) int {
	n := 0
	d.size.ClampedNeighbors(c, func(nc core.Coord) {
		if d.cells[d.size.Index(nc)] == Alive {
			n++
		}
	})
	return n
}

// Advance implements Grid. With workers configured, rows are split into
// disjoint bands and the result is returned only after every band is done.
func (d *Dense) Advance(r rules.RuleSet) Grid {
	next := d.derive(make([]State, len(d.cells)))
	band := func(y0, y1 int) {
		w := d.size.W
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				c := core.Coord{X: x, Y: y}
				idx := y*w + x
				next.cells[idx] = stateOf(r.Next(d.cells[idx] == Alive, d.LiveNeighbors(c)))
			}
		}
	}

	h := d.size.H
	if d.workers <= 1 || h < 2 {
		band(0, h)
		return next
	}

	workers := min(d.workers, h)
	rowsPer := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < h; start += rowsPer {
		end := min(start+rowsPer, h)
		wg.Add(1)
		go func() {
			defer wg.Done()
			band(start, end)
		}()
	}
	wg.Wait()
	return next
}

func (d *Dense) Hash() uint64 { return d.hash.get(d) }

func (d *Dense) Equal(o Grid) bool { return Equal(d, o) }
