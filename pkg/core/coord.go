package core

import "fmt"

// Coord identifies a single grid cell.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

// Less orders coordinates row-major: by Y first, then X.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Add offsets c by d without any wrapping.
func (c Coord) Add(d Coord) Coord { return Coord{X: c.X + d.X, Y: c.Y + d.Y} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// CompareCoords is a slices.SortFunc comparator matching Less.
func CompareCoords(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// NeighborOffsets lists the Moore neighborhood, excluding the cell itself.
var NeighborOffsets = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Area returns W*H.
func (s Size) Area() int { return s.W * s.H }

// Contains reports whether c lies inside [0,W)x[0,H).
func (s Size) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.W && c.Y < s.H
}

// Index returns the row-major slice index for c. The caller must check
// Contains first.
func (s Size) Index(c Coord) int { return c.Y*s.W + c.X }

// At is the inverse of Index.
func (s Size) At(i int) Coord { return Coord{X: i % s.W, Y: i / s.W} }

// Wrap applies toroidal wrapping. The result is always in range, whatever the
// magnitude of the input.
func (s Size) Wrap(c Coord) Coord {
	return Coord{X: mod(c.X, s.W), Y: mod(c.Y, s.H)}
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// ClampedNeighbors calls fn for every in-range Moore neighbor of c. Edge and
// corner cells have fewer than eight.
func (s Size) ClampedNeighbors(c Coord, fn func(Coord)) {
	for _, d := range NeighborOffsets {
		n := c.Add(d)
		if s.Contains(n) {
			fn(n)
		}
	}
}

// ToroidalNeighbors returns the eight wrapped Moore neighbors of c.
func (s Size) ToroidalNeighbors(c Coord) [8]Coord {
	var out [8]Coord
	for i, d := range NeighborOffsets {
		out[i] = s.Wrap(c.Add(d))
	}
	return out
}
