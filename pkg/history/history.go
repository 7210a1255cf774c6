// Package history keeps a bounded window of recent generations so a driver
// can notice when a simulation has reached a fixed point or a short cycle.
package history

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/list"

	"mad-life/pkg/grid"
)

// DefaultCapacity is the window size used when none is configured.
const DefaultCapacity = 10

// ErrInvalidCapacity is returned for non-positive capacities.
var ErrInvalidCapacity = errors.New("history: capacity must be positive")

// Policy selects which snapshot is evicted once the tracker is full.
type Policy int

const (
	// FIFO evicts the oldest inserted snapshot.
	FIFO Policy = iota
	// LRU evicts the least recently inserted or matched snapshot.
	LRU
)

func (p Policy) String() string {
	if p == LRU {
		return "lru"
	}
	return "fifo"
}

// ParsePolicy resolves "fifo" or "lru".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fifo":
		return FIFO, nil
	case "lru":
		return LRU, nil
	}
	return FIFO, fmt.Errorf("history: unknown policy %q", s)
}

// Tracker holds at most Capacity snapshots, compared by content. Snapshots
// are shared with callers and are never modified by the tracker.
type Tracker struct {
	capacity int
	policy   Policy

	order *list.List[grid.Grid]
	index map[uint64][]*list.Node[grid.Grid]
	size  int
}

// New returns an empty tracker.
func New(capacity int, policy Policy) (*Tracker, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Tracker{
		capacity: capacity,
		policy:   policy,
		order:    list.New[grid.Grid](),
		index:    make(map[uint64][]*list.Node[grid.Grid], capacity),
	}, nil
}

// Capacity returns the configured window size.
func (t *Tracker) Capacity() int { return t.capacity }

// Policy returns the eviction policy.
func (t *Tracker) Policy() Policy { return t.policy }

// Len returns the number of retained snapshots.
func (t *Tracker) Len() int { return t.size }

func (t *Tracker) find(g grid.Grid) *list.Node[grid.Grid] {
	for _, n := range t.index[g.Hash()] {
		if n.Value.Equal(g) {
			return n
		}
	}
	return nil
}

// Contains reports whether a snapshot equal to g is retained. Under LRU a
// match counts as a use and protects the snapshot from the next eviction.
func (t *Tracker) Contains(g grid.Grid) bool {
	n := t.find(g)
	if n == nil {
		return false
	}
	if t.policy == LRU {
		t.touch(n)
	}
	return true
}

// Insert records g. A snapshot already retained is not added twice; under
// LRU it is marked as most recently used instead.
func (t *Tracker) Insert(g grid.Grid) {
	if n := t.find(g); n != nil {
		if t.policy == LRU {
			t.touch(n)
		}
		return
	}
	if t.size >= t.capacity {
		t.evict()
	}
	n := &list.Node[grid.Grid]{Value: g}
	t.order.PushBackNode(n)
	h := g.Hash()
	t.index[h] = append(t.index[h], n)
	t.size++
}

// Seen reports whether g was already retained, then records it.
func (t *Tracker) Seen(g grid.Grid) bool {
	if t.Contains(g) {
		return true
	}
	t.Insert(g)
	return false
}

// Snapshots returns the retained grids, oldest first.
func (t *Tracker) Snapshots() []grid.Grid {
	out := make([]grid.Grid, 0, t.size)
	if t.order.Front != nil {
		t.order.Front.Each(func(g grid.Grid) { out = append(out, g) })
	}
	return out
}

// Reset drops every snapshot.
func (t *Tracker) Reset() {
	t.order = list.New[grid.Grid]()
	t.index = make(map[uint64][]*list.Node[grid.Grid], t.capacity)
	t.size = 0
}

func (t *Tracker) touch(n *list.Node[grid.Grid]) {
	if t.order.Back == n {
		return
	}
	g := n.Value
	t.unlink(n)
	fresh := &list.Node[grid.Grid]{Value: g}
	t.order.PushBackNode(fresh)
	h := g.Hash()
	t.index[h] = append(t.index[h], fresh)
	t.size++
}

func (t *Tracker) evict() {
	if oldest := t.order.Front; oldest != nil {
		t.unlink(oldest)
	}
}

func (t *Tracker) unlink(n *list.Node[grid.Grid]) {
	t.order.Remove(n)
	h := n.Value.Hash()
	bucket := t.index[h]
	for i, m := range bucket {
		if m == n {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(t.index, h)
	} else {
		t.index[h] = bucket
	}
	t.size--
}
