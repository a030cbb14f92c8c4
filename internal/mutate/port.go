package mutate

import (
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// AbilitySpec is the op-specific ability data carried by a PORT command.
type AbilitySpec struct {
	Op  wkspec.AbilityOp
	VID int
	PCP int
}

// UpdatePort attaches or detaches a port to/from a worker's rx/tx list per
// SPEC_FULL.md §4.1.
func UpdatePort(m *state.Manager, action Action, ref wkspec.PortRef, dir wkspec.RxTx, workerName string, abil AbilitySpec) error {
	worker, ok := m.WorkerByName(workerName)
	if !ok {
		return validationErrorf("unknown worker %q", workerName)
	}

	switch action {
	case Add:
		return updatePortAdd(m, worker, ref, dir, abil)
	case Del:
		return updatePortDel(m, worker, ref, dir)
	}

	return validationErrorf("unknown port action %v", action)
}

func updatePortAdd(m *state.Manager, worker *state.Worker, ref wkspec.PortRef, dir wkspec.RxTx, abil AbilitySpec) error {
	port, ok := m.Port(ref)
	if !ok {
		return validationErrorf("unknown port %v", ref)
	}

	if worker.HasPort(dir, ref) {
		// Already attached: idempotent unless an ADD_VLAN ability needs
		// to overwrite an existing one.
		if abil.Op == wkspec.OpAddVLAN {
			slot := port.FindAddVLAN(dir)
			if slot == -1 {
				slot = port.FreeAbilitySlot()
			}
			if slot == -1 {
				return validationErrorf("no free ability slot on port %v", ref)
			}
			port.Abils[slot] = state.Ability{Op: wkspec.OpAddVLAN, Dir: dir, VID: abil.VID, PCP: abil.PCP}
			m.MarkPortTouched(ref)
			m.MarkWorkerChanged(worker.ID, true)
		}
		return nil
	}

	maxRx, maxTx := wkspec.PerTypeLimits(worker.WkType, m.Flavor)
	limit := maxRx
	if dir == wkspec.TX {
		limit = maxTx
	}
	if limit != -1 && len(worker.Ports(dir))+1 > limit {
		return validationErrorf("worker %q exceeds %s limit of %d", worker.Name, dir, limit)
	}

	if abil.Op != wkspec.OpNone {
		slot := port.FreeAbilitySlot()
		if slot == -1 {
			return validationErrorf("no free ability slot on port %v", ref)
		}
		port.Abils[slot] = state.Ability{Op: abil.Op, Dir: dir, VID: abil.VID, PCP: abil.PCP}
	}

	port.Kind = ref.Kind
	worker.SetPorts(dir, append(worker.Ports(dir), ref))

	m.MarkPortTouched(ref)
	m.MarkWorkerChanged(worker.ID, true)

	return nil
}

func updatePortDel(m *state.Manager, worker *state.Worker, ref wkspec.PortRef, dir wkspec.RxTx) error {
	port, ok := m.Port(ref)
	if !ok {
		return validationErrorf("unknown port %v", ref)
	}

	for i := range port.Abils {
		if port.Abils[i].Dir == dir && port.Abils[i].Op != wkspec.OpNone {
			port.Abils[i] = state.Ability{}
		}
	}

	ports := worker.Ports(dir)
	for i, r := range ports {
		if r == ref {
			worker.SetPorts(dir, append(ports[:i], ports[i+1:]...))
			break
		}
	}

	m.MarkPortTouched(ref)
	m.MarkWorkerChanged(worker.ID, true)

	return nil
}
