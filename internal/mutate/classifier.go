package mutate

import (
	"github.com/jangwonpark74/spp/internal/macaddr"
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// Action is the add/del action carried by update_classifier and update_port.
type Action int

const (
	Add Action = iota
	Del
)

// UpdateClassifier mutates a port's classifier-table attributes per
// SPEC_FULL.md §4.1. DEL requires the stored vid/mac to agree with the
// request (a zero/sentinel stored value is "don't care"); ADD requires
// both to currently be unset.
func UpdateClassifier(m *state.Manager, action Action, vid int, macStr string, ref wkspec.PortRef) error {
	if vid < 0 || vid > wkspec.MaxVID {
		return validationErrorf("vid %d out of range", vid)
	}

	macVal, canon, err := macaddr.Parse(macStr)
	if err != nil {
		return wrapValidation(err, "bad MAC syntax")
	}

	port, ok := m.Port(ref)
	if !ok {
		return validationErrorf("unknown port %v", ref)
	}
	if !port.Bound() {
		return validationErrorf("port %v is not bound", ref)
	}

	switch action {
	case Del:
		if port.Attrs.VID != wkspec.MaxVID && port.Attrs.VID != vid {
			return validationErrorf("unexpected vid %d on port %v", vid, ref)
		}
		if port.Attrs.Mac != 0 && port.Attrs.Mac != macVal {
			return validationErrorf("unexpected mac %s on port %v", canon, ref)
		}
		port.Attrs.VID = wkspec.MaxVID
		port.Attrs.Mac = 0
		port.Attrs.MacStr = ""

	case Add:
		if port.Attrs.VID != wkspec.MaxVID {
			return validationErrorf("port %v already has vid %d", ref, port.Attrs.VID)
		}
		if port.Attrs.Mac != 0 {
			return validationErrorf("port %v already has mac %s", ref, port.Attrs.MacStr)
		}
		port.Attrs.VID = vid
		port.Attrs.Mac = macVal
		port.Attrs.MacStr = canon

	default:
		return validationErrorf("unknown classifier action %v", action)
	}

	if w, ok := m.WorkerByTxPort(ref); ok {
		m.MarkWorkerChanged(w.ID, true)
	}

	return nil
}
