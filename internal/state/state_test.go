package state

import (
	"testing"

	"github.com/jangwonpark74/spp/internal/wkspec"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(wkspec.FlavorVF, 4, 4, 8)
	for i := 0; i < 4; i++ {
		if err := m.MarkCoreAvailable(i); err != nil {
			t.Fatalf("MarkCoreAvailable(%d): %v", i, err)
		}
	}
	return m
}

func TestPortsPreallocated(t *testing.T) {
	m := newTestManager(t)

	for _, kind := range []wkspec.PortKind{wkspec.PHY, wkspec.VHOST, wkspec.RING} {
		for i := 0; i < 4; i++ {
			p, ok := m.Port(wkspec.PortRef{Kind: kind, Index: i})
			if !ok {
				t.Fatalf("port %s:%d not preallocated", kind, i)
			}
			if p.Bound() {
				t.Fatalf("port %s:%d should start UNDEF", kind, i)
			}
			if p.Flushed() {
				t.Fatalf("port %s:%d should start unflushed", kind, i)
			}
		}
	}

	if _, ok := m.Port(wkspec.PortRef{Kind: wkspec.PHY, Index: 99}); ok {
		t.Fatalf("expected port phy:99 to be absent")
	}
}

func TestStartStopWorkerUpdatesCoreTable(t *testing.T) {
	m := newTestManager(t)

	w, err := m.StartWorker("fwd1", 2, wkspec.FWD)
	if err != nil {
		t.Fatalf("StartWorker: %v", err)
	}

	// Before a core swap, the committed side must still be empty: the
	// dataplane must not observe the staged edit.
	_, committed := m.CommittedCore(2)
	if len(committed) != 0 {
		t.Fatalf("committed core should be empty pre-swap, got %v", committed)
	}

	m.SwapCore(2)

	status, committed := m.CommittedCore(2)
	if status != wkspec.CoreRunning {
		t.Fatalf("expected core running, got %v", status)
	}
	if len(committed) != 1 || committed[0] != w.ID {
		t.Fatalf("expected committed core [%d], got %v", w.ID, committed)
	}

	found, err := m.StopWorker("fwd1")
	if err != nil || !found {
		t.Fatalf("StopWorker: found=%v err=%v", found, err)
	}
	m.SwapCore(2)

	status, committed = m.CommittedCore(2)
	if status != wkspec.CoreIdle {
		t.Fatalf("expected core idle after stop, got %v", status)
	}
	if len(committed) != 0 {
		t.Fatalf("expected empty committed core after stop, got %v", committed)
	}
}

func TestStopUnknownWorkerIsIdempotent(t *testing.T) {
	m := newTestManager(t)

	found, err := m.StopWorker("nope")
	if err != nil {
		t.Fatalf("StopWorker on unknown name returned error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false for unknown worker")
	}
	if len(m.AllWorkers()) != 0 {
		t.Fatalf("state should be unchanged")
	}
}

func TestStartWorkerDuplicateNameFails(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.StartWorker("dup", 0, wkspec.FWD); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := m.StartWorker("dup", 1, wkspec.MRG); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}
}

func TestStartWorkerOnUnuseCoreFails(t *testing.T) {
	m := NewManager(wkspec.FlavorVF, 4, 4, 8) // no MarkCoreAvailable calls

	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err == nil {
		t.Fatalf("expected start on UNUSE core to fail")
	}
}

func TestSnapshotRollback(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	m.SwapCore(0)
	m.CaptureSnapshot()

	if _, err := m.StartWorker("fwd2", 1, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	if _, ok := m.WorkerByName("fwd2"); !ok {
		t.Fatalf("fwd2 should exist before rollback")
	}

	m.RollbackToLastGood()

	if _, ok := m.WorkerByName("fwd2"); ok {
		t.Fatalf("fwd2 should be gone after rollback")
	}
	if _, ok := m.WorkerByName("fwd1"); !ok {
		t.Fatalf("fwd1 should survive rollback")
	}
}

func TestRollbackFreesNameOfRolledBackStart(t *testing.T) {
	m := newTestManager(t)
	m.CaptureSnapshot()

	if _, err := m.StartWorker("fwd2", 1, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	m.RollbackToLastGood()

	// The name must be free for reuse, not stuck in "already in use"
	// limbo pointing at a worker id that rollback just cleared.
	if _, err := m.StartWorker("fwd2", 1, wkspec.FWD); err != nil {
		t.Fatalf("expected fwd2 to be reusable after rollback, got %v", err)
	}
}

func TestRollbackRestoresNameOfRolledBackStop(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	m.CaptureSnapshot()

	if found, err := m.StopWorker("fwd1"); err != nil || !found {
		t.Fatalf("StopWorker: found=%v err=%v", found, err)
	}
	m.RollbackToLastGood()

	// The worker record itself is restored by rollback; it must also be
	// reachable by name again, not an orphaned slot.
	w, ok := m.WorkerByName("fwd1")
	if !ok {
		t.Fatalf("expected fwd1 to be reachable by name after rollback")
	}
	if w.ID != 0 {
		t.Fatalf("expected fwd1 to keep its original worker id, got %d", w.ID)
	}
}

func TestCoreStatusUnknownLcore(t *testing.T) {
	m := newTestManager(t)
	if got := m.CoreStatus(999); got != wkspec.CoreUnuse {
		t.Fatalf("expected CoreUnuse for out-of-range lcore, got %v", got)
	}
}
