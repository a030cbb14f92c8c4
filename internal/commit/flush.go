// Package commit implements flush: the three-step promotion of staged
// edits to the committed view the dataplane reads.
package commit

import (
	"github.com/pkg/errors"

	"github.com/jangwonpark74/spp/internal/agentlog"
	"github.com/jangwonpark74/spp/internal/metrics"
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// PortPublisher is the out-of-scope dataplane port abstraction layer:
// flush calls it to (re)open or reconfigure a port that was touched since
// the last commit. A real implementation talks to DPDK; tests can stub it.
type PortPublisher interface {
	Publish(ref wkspec.PortRef, attrs state.ClassifierAttrs) (ethdevID int, err error)
}

// WorkerNotifier is the out-of-scope worker-thread refresh signal: flush
// calls it once per worker whose change_worker bit is set, after the core
// table swap, so the worker picks up its new port handles.
type WorkerNotifier interface {
	Notify(workerID int)
}

// Flush is the only operation that may affect the dataplane. Individual
// update_* calls before flush are invisible to it. On success it captures
// a rollback snapshot; on failure it rolls back to the previous one, which
// also clears the touched-port set and every change flag. If no snapshot
// has been captured yet, a failed flush leaves the tables and bookkeeping
// as they were.
func Flush(m *state.Manager, ports PortPublisher, workers WorkerNotifier) error {
	if err := publishPorts(m, ports); err != nil {
		metrics.FlushTotal.WithLabelValues("error").Inc()
		m.RollbackToLastGood()
		return errors.Wrap(err, "flush: publish ports")
	}

	publishCores(m)
	publishWorkers(m, workers)

	m.ClearTouchedPorts()
	m.CaptureSnapshot()

	metrics.FlushTotal.WithLabelValues("success").Inc()
	return nil
}

func publishPorts(m *state.Manager, pub PortPublisher) error {
	for _, p := range m.TouchedPorts() {
		ethdevID, err := pub.Publish(p.Ref, p.Attrs)
		if err != nil {
			return errors.Wrapf(err, "port %v", p.Ref)
		}
		p.EthdevID = ethdevID
		agentlog.Debug("published port %v -> ethdev %d", p.Ref, ethdevID)
	}
	return nil
}

func publishCores(m *state.Manager) {
	for _, lcoreID := range m.ChangedCoreIDs() {
		m.SwapCore(lcoreID)
		agentlog.Debug("swapped core table for lcore %d", lcoreID)
	}
}

func publishWorkers(m *state.Manager, notifier WorkerNotifier) {
	for _, id := range m.ChangedWorkerIDs() {
		if notifier != nil {
			notifier.Notify(id)
		}
		m.ClearWorkerChanged(id)
	}
}
