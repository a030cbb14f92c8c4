package mutate

import (
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// UpdateWorker starts or stops a worker thread per SPEC_FULL.md §4.1.
// STOP of an unknown name is canonicalized as idempotent success.
func UpdateWorker(m *state.Manager, action Action, name string, lcoreID int, wkType wkspec.WorkerType) error {
	switch action {
	case Add:
		if name == "" || len(name) > wkspec.NameMax {
			return validationErrorf("invalid worker name %q", name)
		}
		if _, err := m.StartWorker(name, lcoreID, wkType); err != nil {
			return wrapValidation(err, "update_worker start")
		}
		return nil

	case Del:
		if _, err := m.StopWorker(name); err != nil {
			return wrapValidation(err, "update_worker stop")
		}
		return nil
	}

	return validationErrorf("unknown worker action %v", action)
}
