package commit

import (
	"testing"

	"github.com/jangwonpark74/spp/internal/mutate"
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

type fakePublisher struct {
	fail    bool
	nextID  int
	publish []wkspec.PortRef
}

func (f *fakePublisher) Publish(ref wkspec.PortRef, attrs state.ClassifierAttrs) (int, error) {
	f.publish = append(f.publish, ref)
	if f.fail {
		return 0, errTest
	}
	f.nextID++
	return f.nextID, nil
}

var errTest = &testError{"publish failed"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

type fakeNotifier struct {
	notified []int
}

func (f *fakeNotifier) Notify(id int) {
	f.notified = append(f.notified, id)
}

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

func TestFlushPublishesPortsCoresAndWorkers(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	ref := wkspec.PortRef{Kind: wkspec.PHY, Index: 0}
	if err := mutate.UpdatePort(m, mutate.Add, ref, wkspec.RX, "fwd1", mutate.AbilitySpec{}); err != nil {
		t.Fatalf("UpdatePort: %v", err)
	}

	pub := &fakePublisher{}
	note := &fakeNotifier{}

	if err := Flush(m, pub, note); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(pub.publish) != 1 || pub.publish[0] != ref {
		t.Fatalf("expected port %v published, got %v", ref, pub.publish)
	}
	p, _ := m.Port(ref)
	if !p.Flushed() {
		t.Fatalf("expected port to be flushed")
	}

	status, committed := m.CommittedCore(0)
	if status != wkspec.CoreRunning || len(committed) != 1 {
		t.Fatalf("expected committed core to show the running worker, got status=%v ids=%v", status, committed)
	}

	if len(note.notified) != 1 {
		t.Fatalf("expected exactly one worker notification, got %v", note.notified)
	}
	if len(m.ChangedWorkerIDs()) != 0 {
		t.Fatalf("expected change_worker bits cleared after flush")
	}
}

func TestFlushRollsBackOnPortFailure(t *testing.T) {
	m := newTestManager(t)
	// Establish a baseline snapshot, as a prior successful flush would,
	// before staging the edit that the failing publisher will reject.
	m.CaptureSnapshot()

	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err != nil {
		t.Fatalf("StartWorker: %v", err)
	}
	ref := wkspec.PortRef{Kind: wkspec.PHY, Index: 0}
	if err := mutate.UpdatePort(m, mutate.Add, ref, wkspec.RX, "fwd1", mutate.AbilitySpec{}); err != nil {
		t.Fatalf("UpdatePort: %v", err)
	}

	pub := &fakePublisher{fail: true}
	note := &fakeNotifier{}

	if err := Flush(m, pub, note); err == nil {
		t.Fatalf("expected Flush to fail")
	}

	if _, ok := m.WorkerByName("fwd1"); ok {
		t.Fatalf("expected rollback to the pre-StartWorker snapshot to remove fwd1")
	}
	if len(note.notified) != 0 {
		t.Fatalf("expected no worker notifications on a failed flush")
	}

	// The rolled-back name must be free for reuse, not left pointing at a
	// worker id that rollback already cleared.
	if _, err := m.StartWorker("fwd1", 0, wkspec.FWD); err != nil {
		t.Fatalf("expected fwd1 to be reusable after a rolled-back flush, got %v", err)
	}
}
