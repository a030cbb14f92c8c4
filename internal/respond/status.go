package respond

import (
	"fmt"

	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// abilityOpString is the fixed op-stringification table used when
// rendering a port's active VLAN ability.
func abilityOpString(op wkspec.AbilityOp) string {
	switch op {
	case wkspec.OpAddVLAN:
		return "add"
	case wkspec.OpDelVLAN:
		return "del"
	}
	return "none"
}

// emitVLANAbility appends the "vlan" block for a port's ability in the
// given direction: the active ADD/DEL VLAN ability if one is installed,
// else the fixed absent-ability shape.
func emitVLANAbility(b *Builder, p *state.Port, dir wkspec.RxTx) {
	for _, a := range p.Abils {
		if a.Dir == dir && (a.Op == wkspec.OpAddVLAN || a.Op == wkspec.OpDelVLAN) {
			b.Str("operation", abilityOpString(a.Op))
			b.Int("id", a.VID)
			b.Int("pcp", a.PCP)
			return
		}
	}
	b.Str("operation", "none")
	b.Int("id", 0)
	b.Int("pcp", 0)
}

// emitPortList renders a worker's rx_port or tx_port array: each entry is
// the formatted "kind:index" port string plus a nested vlan block.
func emitPortList(m *state.Manager, refs []wkspec.PortRef, dir wkspec.RxTx) []map[string]interface{} {
	out := make([]map[string]interface{}, len(refs))
	for i, ref := range refs {
		eb := NewBuilder()
		eb.Str("port", ref.String())
		eb.Block("vlan", func(vb *Builder) {
			if p, ok := m.Port(ref); ok {
				emitVLANAbility(vb, p, dir)
			} else {
				vb.Str("operation", "none").Int("id", 0).Int("pcp", 0)
			}
		})
		out[i] = eb.Fields()
	}
	return out
}

// emitCoreArray renders the "core" catalog entry: one block per lcore.
func emitCoreArray(b *Builder, m *state.Manager) {
	b.BlockArray("core", m.NumCores(), func(lcoreID int, eb *Builder) {
		status, ids := m.CommittedCore(lcoreID)
		eb.Int("core", lcoreID)

		if status == wkspec.CoreUnuse || len(ids) == 0 {
			eb.Str("type", "unuse")
			return
		}

		w, ok := m.Worker(ids[0])
		if !ok {
			eb.Str("type", "unuse")
			return
		}

		eb.Str("name", w.Name)
		eb.Str("type", w.WkType.String())
		eb.Raw("rx_port", emitPortList(m, w.RxPorts, wkspec.RX))
		eb.Raw("tx_port", emitPortList(m, w.TxPorts, wkspec.TX))
	})
}

// emitClassifierTable renders the "classifier_table" catalog entry: one
// entry per port with classifier attrs set.
func emitClassifierTable(b *Builder, m *state.Manager) {
	var entries []map[string]interface{}
	for _, p := range m.AllPorts() {
		if p.Attrs.VID != wkspec.MaxVID {
			entries = append(entries, map[string]interface{}{
				"type":  "vlan",
				"value": fmt.Sprintf("%d/%s", p.Attrs.VID, p.Attrs.MacStr),
				"port":  p.Ref.String(),
			})
		} else if p.Attrs.Mac != 0 {
			entries = append(entries, map[string]interface{}{
				"type":  "mac",
				"value": p.Attrs.MacStr,
				"port":  p.Ref.String(),
			})
		}
	}
	if entries == nil {
		entries = []map[string]interface{}{}
	}
	b.Raw("classifier_table", entries)
}

// emitFlushedPortsByKind renders the "phy"/"vhost"/"ring" catalog entries:
// the indices of every pre-allocated port of that kind that has been
// flushed at least once.
func emitFlushedPortsByKind(kind wkspec.PortKind) func(*Builder, *state.Manager) {
	return func(b *Builder, m *state.Manager) {
		var indices []int
		for _, p := range m.AllPorts() {
			if p.Ref.Kind == kind && p.Flushed() {
				indices = append(indices, p.Ref.Index)
			}
		}
		b.IntArray(kind.String(), indices)
	}
}
