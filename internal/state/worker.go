package state

import "github.com/jangwonpark74/spp/internal/wkspec"

// Worker is one worker-thread record. A zero Worker (WkType == WkUnuse)
// denotes a free slot in the worker table.
type Worker struct {
	ID      int
	Name    string
	WkType  wkspec.WorkerType
	LcoreID int
	RxPorts []wkspec.PortRef
	TxPorts []wkspec.PortRef
}

func (w *Worker) inUse() bool {
	return w != nil && w.WkType != wkspec.WkUnuse
}

// Ports returns the port slice for the given direction.
func (w *Worker) Ports(dir wkspec.RxTx) []wkspec.PortRef {
	if dir == wkspec.TX {
		return w.TxPorts
	}
	return w.RxPorts
}

// SetPorts replaces the port slice for the given direction.
func (w *Worker) SetPorts(dir wkspec.RxTx, refs []wkspec.PortRef) {
	if dir == wkspec.TX {
		w.TxPorts = refs
	} else {
		w.RxPorts = refs
	}
}

// HasPort reports whether ref is already attached in the given direction.
func (w *Worker) HasPort(dir wkspec.RxTx, ref wkspec.PortRef) bool {
	for _, r := range w.Ports(dir) {
		if r == ref {
			return true
		}
	}
	return false
}

func (w *Worker) clone() *Worker {
	if w == nil {
		return nil
	}
	cp := *w
	cp.RxPorts = append([]wkspec.PortRef(nil), w.RxPorts...)
	cp.TxPorts = append([]wkspec.PortRef(nil), w.TxPorts...)
	return &cp
}
