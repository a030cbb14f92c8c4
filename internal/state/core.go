package state

import (
	"sync/atomic"

	"github.com/jangwonpark74/spp/internal/wkspec"
)

// CoreSide is one half of a double-buffered lcore worker-id list.
type CoreSide struct {
	ID []int
}

func (s CoreSide) clone() CoreSide {
	return CoreSide{ID: append([]int(nil), s.ID...)}
}

// Core is one lcore slot, published via an atomic release-store /
// acquire-load on updIndex so dataplane readers never observe a torn
// update: they always read Committed(), the control plane only ever
// writes Staging().
type Core struct {
	Status wkspec.CoreStatus

	sides    [2]CoreSide
	updIndex atomic.Int32 // 0 or 1: index of the staging (writable) side
}

func newCore() *Core {
	return &Core{Status: wkspec.CoreUnuse}
}

// Staging returns the side the control plane may mutate.
func (c *Core) Staging() *CoreSide {
	return &c.sides[c.updIndex.Load()]
}

// Committed returns the side visible to dataplane readers.
func (c *Core) Committed() *CoreSide {
	return &c.sides[1-c.updIndex.Load()]
}

// Swap publishes the staging side as committed: it copies the current
// staging contents into the (about to become) new staging side first, so
// both sides stay in sync, then flips the index with a release store.
func (c *Core) Swap() {
	idx := c.updIndex.Load()
	next := 1 - idx
	c.sides[next] = c.sides[idx].clone()
	c.updIndex.Store(next)
}

func (c *Core) clone() *Core {
	cp := &Core{Status: c.Status}
	cp.sides[0] = c.sides[0].clone()
	cp.sides[1] = c.sides[1].clone()
	cp.updIndex.Store(c.updIndex.Load())
	return cp
}

func (s *CoreSide) add(id int) {
	s.ID = append(s.ID, id)
}

func (s *CoreSide) remove(id int) {
	for i, v := range s.ID {
		if v == id {
			s.ID = append(s.ID[:i], s.ID[i+1:]...)
			return
		}
	}
}
