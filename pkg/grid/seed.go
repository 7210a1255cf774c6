package grid

import "mad-life/pkg/core"

// Random builds a grid populated from rng. Dense grids flip a coin with
// probability density for every cell. Sparse grids sample density*W*H
// coordinates; duplicates collapse, so the population may come out lower.
func Random(kind Kind, w, h int, density float64, rng *core.RNG) (Grid, error) {
	density = max(0, min(1, density))
	switch kind {
	case KindDense:
		d, err := NewDense(w, h)
		if err != nil {
			return nil, err
		}
		for i := range d.cells {
			if rng.Chance(density) {
				d.cells[i] = Alive
			}
		}
		return d, nil
	case KindSparse:
		s, err := NewSparse(w, h)
		if err != nil {
			return nil, err
		}
		n := int(density * float64(s.size.Area()))
		for i := 0; i < n; i++ {
			s.alive.Put(rng.Coord(s.size))
		}
		return s, nil
	}
	return New(kind, w, h)
}
