package state

import (
	"fmt"

	"github.com/jangwonpark74/spp/internal/wkspec"
)

// These are the mechanical primitives the internal/mutate handlers drive;
// the validation policy itself (§4.1 of SPEC_FULL.md) lives in mutate, not
// here, so that the state model stays a dumb set of tables plus the
// staging/committed bookkeeping.

// MarkPortTouched flags a port as having been edited since the last flush.
func (m *Manager) MarkPortTouched(ref wkspec.PortRef) {
	m.touchedPorts[ref] = true
}

// TouchedPorts returns the ports marked dirty since the last flush.
func (m *Manager) TouchedPorts() []*Port {
	out := make([]*Port, 0, len(m.touchedPorts))
	for ref := range m.touchedPorts {
		out = append(out, m.ports[ref])
	}
	return out
}

// MarkWorkerChanged sets or clears a worker's change_worker bit.
func (m *Manager) MarkWorkerChanged(id int, changed bool) {
	if id >= 0 && id < len(m.changeWorker) {
		m.changeWorker[id] = changed
	}
}

// MarkCoreChanged sets an lcore's change_core bit.
func (m *Manager) MarkCoreChanged(lcoreID int) {
	if lcoreID >= 0 && lcoreID < len(m.changeCore) {
		m.changeCore[lcoreID] = true
	}
}

// StartWorker allocates a worker id, writes a fresh worker record with
// zeroed port arrays, appends it to the owning lcore's staging side, and
// marks both change bits. Fails if the lcore is UNUSE, the name is
// already in use, or the worker-id pool is exhausted.
func (m *Manager) StartWorker(name string, lcoreID int, wkType wkspec.WorkerType) (*Worker, error) {
	core, err := m.core(lcoreID)
	if err != nil {
		return nil, err
	}
	if core.Status == wkspec.CoreUnuse {
		return nil, fmt.Errorf("lcore %d is not available", lcoreID)
	}
	if _, exists := m.names[name]; exists {
		return nil, fmt.Errorf("worker name %q already in use", name)
	}

	id, err := m.allocWorkerID()
	if err != nil {
		return nil, err
	}

	w := &Worker{ID: id, Name: name, WkType: wkType, LcoreID: lcoreID}
	m.workers[id] = w
	m.names[name] = id

	core.Staging().add(id)
	if core.Status == wkspec.CoreIdle {
		core.Status = wkspec.CoreRunning
	}

	m.MarkWorkerChanged(id, true)
	m.MarkCoreChanged(lcoreID)

	return w, nil
}

// StopWorker zeros the worker record named name and removes it from its
// lcore's staging side. It is idempotent: stopping an unknown name
// succeeds without altering any state, per the canonicalized invariant 5.
func (m *Manager) StopWorker(name string) (found bool, err error) {
	id, exists := m.names[name]
	if !exists {
		return false, nil
	}
	w := m.workers[id]

	core, cerr := m.core(w.LcoreID)
	if cerr != nil {
		return false, cerr
	}
	core.Staging().remove(id)
	if len(core.Staging().ID) == 0 && core.Status == wkspec.CoreRunning {
		core.Status = wkspec.CoreIdle
	}

	if w.WkType == wkspec.CLS {
		for _, ref := range w.TxPorts {
			if p, ok := m.ports[ref]; ok {
				p.Attrs = newClassifierAttrs()
			}
		}
	}

	delete(m.names, name)
	m.workers[id] = nil

	m.MarkWorkerChanged(id, false)
	m.MarkCoreChanged(w.LcoreID)

	return true, nil
}
