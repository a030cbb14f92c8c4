package mutate

import (
	"testing"

	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

func newTestManager(t *testing.T) *state.Manager {
	t.Helper()
	m := state.NewManager(wkspec.FlavorVF, 4, 4, 8)
	for i := 0; i < 4; i++ {
		if err := m.MarkCoreAvailable(i); err != nil {
			t.Fatalf("MarkCoreAvailable: %v", err)
		}
	}
	return m
}

func bindPort(t *testing.T, m *state.Manager, ref wkspec.PortRef, dir wkspec.RxTx, wkType wkspec.WorkerType, name string, lcore int) *state.Worker {
	t.Helper()
	w, err := m.StartWorker(name, lcore, wkType)
	if err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	if err := UpdatePort(m, Add, ref, dir, name, AbilitySpec{}); err != nil {
		t.Fatalf("UpdatePort add: %v", err)
	}
	return w
}

func TestUpdateClassifierAddThenDel(t *testing.T) {
	m := newTestManager(t)
	ref := wkspec.PortRef{Kind: wkspec.RING, Index: 0}
	bindPort(t, m, ref, wkspec.TX, wkspec.CLS, "cls1", 0)

	if err := UpdateClassifier(m, Add, 100, "aa:bb:cc:dd:ee:ff", ref); err != nil {
		t.Fatalf("add classifier: %v", err)
	}
	p, _ := m.Port(ref)
	if p.Attrs.VID != 100 {
		t.Fatalf("expected vid 100, got %d", p.Attrs.VID)
	}

	// Adding again while already set must fail.
	if err := UpdateClassifier(m, Add, 100, "aa:bb:cc:dd:ee:ff", ref); err == nil {
		t.Fatalf("expected second add to fail")
	}

	// Deleting with a mismatched vid must fail.
	if err := UpdateClassifier(m, Del, 200, "aa:bb:cc:dd:ee:ff", ref); err == nil {
		t.Fatalf("expected mismatched del to fail")
	}

	if err := UpdateClassifier(m, Del, 100, "aa:bb:cc:dd:ee:ff", ref); err != nil {
		t.Fatalf("del classifier: %v", err)
	}
	p, _ = m.Port(ref)
	if p.Attrs.VID != wkspec.MaxVID {
		t.Fatalf("expected vid reset to sentinel, got %d", p.Attrs.VID)
	}
}

func TestUpdateClassifierUnboundPortFails(t *testing.T) {
	m := newTestManager(t)
	ref := wkspec.PortRef{Kind: wkspec.RING, Index: 1}
	if err := UpdateClassifier(m, Add, 1, "aa:bb:cc:dd:ee:ff", ref); err == nil {
		t.Fatalf("expected failure on unbound port")
	}
}

func TestUpdateClassifierBadMAC(t *testing.T) {
	m := newTestManager(t)
	ref := wkspec.PortRef{Kind: wkspec.RING, Index: 0}
	bindPort(t, m, ref, wkspec.TX, wkspec.CLS, "cls1", 0)

	if err := UpdateClassifier(m, Add, 1, "not-a-mac", ref); err == nil {
		t.Fatalf("expected bad MAC syntax to fail")
	}
}

func TestUpdateWorkerStopUnknownIsNotAnError(t *testing.T) {
	m := newTestManager(t)
	if err := UpdateWorker(m, Del, "ghost", 0, wkspec.FWD); err != nil {
		t.Fatalf("expected idempotent success, got %v", err)
	}
}

func TestUpdateWorkerInvalidName(t *testing.T) {
	m := newTestManager(t)
	if err := UpdateWorker(m, Add, "", 0, wkspec.FWD); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestUpdatePortRespectsPerTypeLimits(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}

	ref0 := wkspec.PortRef{Kind: wkspec.PHY, Index: 0}
	ref1 := wkspec.PortRef{Kind: wkspec.PHY, Index: 1}

	if err := UpdatePort(m, Add, ref0, wkspec.RX, "fwd1", AbilitySpec{}); err != nil {
		t.Fatalf("first rx add: %v", err)
	}
	if err := UpdatePort(m, Add, ref1, wkspec.RX, "fwd1", AbilitySpec{}); err == nil {
		t.Fatalf("expected FWD worker to be limited to one rx port")
	}
}

func TestUpdatePortAddIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	ref := wkspec.PortRef{Kind: wkspec.PHY, Index: 0}
	bindPort(t, m, ref, wkspec.RX, wkspec.FWD, "fwd1", 0)

	if err := UpdatePort(m, Add, ref, wkspec.RX, "fwd1", AbilitySpec{}); err != nil {
		t.Fatalf("expected idempotent re-add to succeed, got %v", err)
	}
	w, _ := m.WorkerByName("fwd1")
	if len(w.Ports(wkspec.RX)) != 1 {
		t.Fatalf("expected exactly one rx port, got %d", len(w.Ports(wkspec.RX)))
	}
}

func TestUpdatePortDelPreservesOtherDirectionAbilities(t *testing.T) {
	// MIR workers may only attach tx ports under the mirror flavor (the vf
	// flavor caps MaxTxForMirror at 0), so this scenario needs a
	// FlavorMirror manager rather than the default vf one.
	m := state.NewManager(wkspec.FlavorMirror, 4, 4, 8)
	if err := m.MarkCoreAvailable(0); err != nil {
		t.Fatalf("MarkCoreAvailable: %v", err)
	}
	ref := wkspec.PortRef{Kind: wkspec.PHY, Index: 0}
	w, err := m.StartWorker("mir1", 0, wkspec.MIR)
	if err != nil {
		t.Fatalf("StartWorker: %v", err)
	}

	rxAbil := AbilitySpec{Op: wkspec.OpAddVLAN, VID: 10}
	if err := UpdatePort(m, Add, ref, wkspec.RX, w.Name, rxAbil); err != nil {
		t.Fatalf("rx add: %v", err)
	}
	txAbil := AbilitySpec{Op: wkspec.OpAddVLAN, VID: 20}
	if err := UpdatePort(m, Add, ref, wkspec.TX, w.Name, txAbil); err != nil {
		t.Fatalf("tx add: %v", err)
	}

	if err := UpdatePort(m, Del, ref, wkspec.TX, w.Name, AbilitySpec{}); err != nil {
		t.Fatalf("tx del: %v", err)
	}

	p, _ := m.Port(ref)
	if p.FindAddVLAN(wkspec.RX) == -1 {
		t.Fatalf("expected rx ADD_VLAN ability to survive a tx del")
	}
	if p.FindAddVLAN(wkspec.TX) != -1 {
		t.Fatalf("expected tx ADD_VLAN ability to be cleared")
	}
}
