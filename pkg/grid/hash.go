package grid

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"mad-life/pkg/core"
)

// lazyHash caches a content hash on first use. It is only valid because the
// owning grid never changes after construction.
type lazyHash struct {
	once sync.Once
	sum  uint64
}

func (h *lazyHash) get(g Grid) uint64 {
	h.once.Do(func() { h.sum = contentHash(g) })
	return h.sum
}

// contentHash is independent of iteration order: per-cell hashes are summed
// before being folded together with the dimensions and population.
func contentHash(g Grid) uint64 {
	var (
		cell [16]byte
		acc  uint64
		n    uint64
	)
	g.EachAlive(func(c core.Coord) {
		binary.LittleEndian.PutUint64(cell[0:8], uint64(c.X))
		binary.LittleEndian.PutUint64(cell[8:16], uint64(c.Y))
		acc += xxhash.Sum64(cell[:])
		n++
	})

	s := g.Size()
	var head [32]byte
	binary.LittleEndian.PutUint64(head[0:8], uint64(s.W))
	binary.LittleEndian.PutUint64(head[8:16], uint64(s.H))
	binary.LittleEndian.PutUint64(head[16:24], n)
	binary.LittleEndian.PutUint64(head[24:32], acc)
	return xxhash.Sum64(head[:])
}
