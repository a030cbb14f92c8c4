package main

import (
	"encoding/json"
	"io"

	"github.com/jangwonpark74/spp/internal/agentlog"
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// stubPortPublisher and stubWorkerNotifier stand in for the out-of-scope
// dataplane port abstraction layer and the worker threads themselves
// (SPEC_FULL.md §1); a real agent wires these to DPDK port open/close and
// to the running worker-thread handles respectively.

type stubPortPublisher struct {
	nextEthdev int
}

func (s stubPortPublisher) Publish(ref wkspec.PortRef, attrs state.ClassifierAttrs) (int, error) {
	agentlog.Debug("stub publish port %v attrs=%+v", ref, attrs)
	return int(ref.Kind)*1000 + ref.Index, nil
}

type stubWorkerNotifier struct{}

func (stubWorkerNotifier) Notify(workerID int) {
	agentlog.Debug("stub notify worker %d", workerID)
}

func jsonEncoder(w io.Writer) func(map[string]interface{}) error {
	enc := json.NewEncoder(w)
	return func(v map[string]interface{}) error {
		return enc.Encode(v)
	}
}
