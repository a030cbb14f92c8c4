// Package state is the in-memory inventory of ports, workers and cores:
// the staging view mutated by update_classifier/update_worker/update_port,
// and the committed view published by flush. It replaces the original
// source's sppwk_get_mng_data() global accessor with an explicit handle
// threaded through every handler.
package state

import (
	"fmt"
	"sort"

	"github.com/jangwonpark74/spp/internal/wkspec"
)

// Manager owns every table the command runner mutates.
type Manager struct {
	Flavor      wkspec.Flavor
	ClientID    int
	MasterLcore int

	ports map[wkspec.PortRef]*Port

	workers []*Worker // dense pool; nil slot == free worker id
	names   map[string]int

	cores []*Core // indexed by lcore id

	changeCore   []bool
	changeWorker []bool
	touchedPorts map[wkspec.PortRef]bool

	lastGood *Snapshot
}

// NewManager allocates the pre-sized port and core tables. nCores is the
// number of lcore slots; cores marked present via MarkCoreAvailable start
// IDLE, everything else stays UNUSE. maxPortsPerKind bounds MAX_ETHPORTS
// per kind. nWorkers is the size of the dense worker-id pool.
func NewManager(flavor wkspec.Flavor, nCores, maxPortsPerKind, nWorkers int) *Manager {
	m := &Manager{
		Flavor:       flavor,
		ports:        make(map[wkspec.PortRef]*Port),
		workers:      make([]*Worker, nWorkers),
		names:        make(map[string]int),
		cores:        make([]*Core, nCores),
		changeCore:   make([]bool, nCores),
		changeWorker: make([]bool, nWorkers),
		touchedPorts: make(map[wkspec.PortRef]bool),
	}

	for _, kind := range []wkspec.PortKind{wkspec.PHY, wkspec.VHOST, wkspec.RING} {
		for i := 0; i < maxPortsPerKind; i++ {
			ref := wkspec.PortRef{Kind: kind, Index: i}
			m.ports[ref] = newPort(ref)
		}
	}

	for i := range m.cores {
		m.cores[i] = newCore()
	}

	return m
}

// MarkCoreAvailable sets an lcore's status to IDLE, meaning the control
// plane may start a worker on it. Called during ambient startup wiring
// (cmd/spp-vf), driven by internal/coreinfo lcore discovery.
func (m *Manager) MarkCoreAvailable(lcoreID int) error {
	c, err := m.core(lcoreID)
	if err != nil {
		return err
	}
	if c.Status == wkspec.CoreUnuse {
		c.Status = wkspec.CoreIdle
	}
	return nil
}

func (m *Manager) core(lcoreID int) (*Core, error) {
	if lcoreID < 0 || lcoreID >= len(m.cores) {
		return nil, fmt.Errorf("unknown lcore %d", lcoreID)
	}
	return m.cores[lcoreID], nil
}

// CoreStatus reports the lifecycle state of an lcore.
func (m *Manager) CoreStatus(lcoreID int) wkspec.CoreStatus {
	c, err := m.core(lcoreID)
	if err != nil {
		return wkspec.CoreUnuse
	}
	return c.Status
}

// Port looks up a pre-allocated port slot.
func (m *Manager) Port(ref wkspec.PortRef) (*Port, bool) {
	p, ok := m.ports[ref]
	return p, ok
}

// AllPorts returns every allocated port, ordered by (kind, index) for
// deterministic status output.
func (m *Manager) AllPorts() []*Port {
	out := make([]*Port, 0, len(m.ports))
	for _, p := range m.ports {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ref.Kind != out[j].Ref.Kind {
			return out[i].Ref.Kind < out[j].Ref.Kind
		}
		return out[i].Ref.Index < out[j].Ref.Index
	})
	return out
}

// WorkerByName finds a started worker by its unique name.
func (m *Manager) WorkerByName(name string) (*Worker, bool) {
	id, ok := m.names[name]
	if !ok {
		return nil, false
	}
	return m.workers[id], m.workers[id].inUse()
}

// Worker looks up a worker by id.
func (m *Manager) Worker(id int) (*Worker, bool) {
	if id < 0 || id >= len(m.workers) {
		return nil, false
	}
	return m.workers[id], m.workers[id].inUse()
}

// AllWorkers returns every started worker, ordered by id.
func (m *Manager) AllWorkers() []*Worker {
	var out []*Worker
	for _, w := range m.workers {
		if w.inUse() {
			out = append(out, w)
		}
	}
	return out
}

// NumCores reports the size of the core table.
func (m *Manager) NumCores() int { return len(m.cores) }

// CommittedCore exposes the committed side of an lcore's worker-id list, for the
// status iterators. It never returns the staging side.
func (m *Manager) CommittedCore(lcoreID int) (wkspec.CoreStatus, []int) {
	c, err := m.core(lcoreID)
	if err != nil {
		return wkspec.CoreUnuse, nil
	}
	return c.Status, c.Committed().ID
}

// CaptureSnapshot records the current tables as the last-known-good state,
// to be used by RollbackToLastGood if a later flush fails. Per the
// open-question resolution, this must only be called after a successful
// flush.
func (m *Manager) CaptureSnapshot() {
	m.lastGood = m.snapshot()
}

// RollbackToLastGood restores the tables captured by the most recent
// CaptureSnapshot call.
func (m *Manager) RollbackToLastGood() {
	m.rollback(m.lastGood)
}

// ClearTouchedPorts resets the dirty-port set after a successful publish.
func (m *Manager) ClearTouchedPorts() {
	m.touchedPorts = make(map[wkspec.PortRef]bool)
}

// ChangedCoreIDs returns the lcore ids with a pending change_core bit.
func (m *Manager) ChangedCoreIDs() []int {
	var out []int
	for i, v := range m.changeCore {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// SwapCore publishes an lcore's staging side as committed and clears its
// change_core bit.
func (m *Manager) SwapCore(lcoreID int) {
	if c, err := m.core(lcoreID); err == nil {
		c.Swap()
	}
	if lcoreID >= 0 && lcoreID < len(m.changeCore) {
		m.changeCore[lcoreID] = false
	}
}

// ChangedWorkerIDs returns the ids with change_worker set: workers started
// or mutated since the last flush that need their dataplane handles
// refreshed. A stopped worker clears its own bit (see StopWorker), so it
// is not renotified — its removal is carried entirely by the core-table
// change instead.
func (m *Manager) ChangedWorkerIDs() []int {
	var out []int
	for i, v := range m.changeWorker {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// ClearWorkerChanged resets a worker's change_worker bit after publish.
func (m *Manager) ClearWorkerChanged(id int) {
	m.MarkWorkerChanged(id, false)
}

// WorkerByTxPort finds the worker, if any, that has ref attached as a TX
// port — used by update_classifier to mark the owning worker changed.
func (m *Manager) WorkerByTxPort(ref wkspec.PortRef) (*Worker, bool) {
	for _, w := range m.workers {
		if w.inUse() && w.HasPort(wkspec.TX, ref) {
			return w, true
		}
	}
	return nil, false
}

// allocWorkerID finds a free slot in the dense worker pool.
func (m *Manager) allocWorkerID() (int, error) {
	for i, w := range m.workers {
		if !w.inUse() {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no free worker id")
}
