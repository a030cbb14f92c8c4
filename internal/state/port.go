package state

import "github.com/jangwonpark74/spp/internal/wkspec"

// ClassifierAttrs are the per-port classifier-table attributes. VID uses
// wkspec.MaxVID as the "unset" sentinel; Mac uses 0.
type ClassifierAttrs struct {
	VID    int
	Mac    uint64
	MacStr string
}

func newClassifierAttrs() ClassifierAttrs {
	return ClassifierAttrs{VID: wkspec.MaxVID}
}

// Ability is a per-port, per-direction transform slot.
type Ability struct {
	Op   wkspec.AbilityOp
	Dir  wkspec.RxTx
	VID  int
	PCP  int
}

// Port is one pre-allocated (kind, index) slot.
type Port struct {
	Ref      wkspec.PortRef
	Kind     wkspec.PortKind // UNDEF until first bind
	EthdevID int             // opaque dataplane handle, negative until flushed
	Attrs    ClassifierAttrs
	Abils    [wkspec.AbilMax]Ability
}

// Flushed reports whether the port has been through flush at least once.
func (p *Port) Flushed() bool {
	return p.EthdevID >= 0
}

func newPort(ref wkspec.PortRef) *Port {
	return &Port{
		Ref:      ref,
		Kind:     wkspec.UNDEF,
		EthdevID: -1,
		Attrs:    newClassifierAttrs(),
	}
}

// Bound reports whether the port has been attached to any worker.
func (p *Port) Bound() bool {
	return p.Kind != wkspec.UNDEF
}

// FreeAbilitySlot returns the index of the first OpNone slot, or -1.
func (p *Port) FreeAbilitySlot() int {
	for i := range p.Abils {
		if p.Abils[i].Op == wkspec.OpNone {
			return i
		}
	}
	return -1
}

// FindAddVLAN returns the index of the port's installed ADD_VLAN ability in
// the given direction, or -1 if none is installed.
func (p *Port) FindAddVLAN(dir wkspec.RxTx) int {
	for i := range p.Abils {
		if p.Abils[i].Op == wkspec.OpAddVLAN && p.Abils[i].Dir == dir {
			return i
		}
	}
	return -1
}

// clone returns a deep copy, used by the rollback snapshot.
func (p *Port) clone() *Port {
	cp := *p
	return &cp
}
