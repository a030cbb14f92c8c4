// Package wkspec holds the enums, sentinels and size limits shared by every
// layer of the command runner: port/worker/core identity, ability ops and
// the per-type port-count limits from the data model.
package wkspec

import "fmt"

// PortKind identifies the class of a logical port. UNDEF marks an
// unallocated slot.
type PortKind int

const (
	UNDEF PortKind = iota
	PHY
	VHOST
	RING
)

func (k PortKind) String() string {
	switch k {
	case PHY:
		return "phy"
	case VHOST:
		return "vhost"
	case RING:
		return "ring"
	}
	return "undef"
}

// ParsePortKind parses the wire string form of a port kind.
func ParsePortKind(s string) (PortKind, error) {
	switch s {
	case "phy":
		return PHY, nil
	case "vhost":
		return VHOST, nil
	case "ring":
		return RING, nil
	}
	return UNDEF, fmt.Errorf("unknown port kind %q", s)
}

// PortRef is the (kind, index) identity of a port.
type PortRef struct {
	Kind  PortKind
	Index int
}

func (p PortRef) String() string {
	return fmt.Sprintf("%s:%d", p.Kind, p.Index)
}

// WorkerType is the role a worker plays in the dataplane topology.
type WorkerType int

const (
	WkUnuse WorkerType = iota
	FWD
	MRG
	CLS
	MIR
)

func (t WorkerType) String() string {
	switch t {
	case FWD:
		return "forward"
	case MRG:
		return "merge"
	case CLS:
		return "classifier"
	case MIR:
		return "mirror"
	}
	return "unuse"
}

// ParseWorkerType parses the wire string form of a worker type.
func ParseWorkerType(s string) (WorkerType, error) {
	switch s {
	case "forward":
		return FWD, nil
	case "merge":
		return MRG, nil
	case "classifier":
		return CLS, nil
	case "mirror":
		return MIR, nil
	}
	return WkUnuse, fmt.Errorf("unknown worker type %q", s)
}

// RxTx selects a direction on a worker or port ability.
type RxTx int

const (
	RX RxTx = iota
	TX
)

func (d RxTx) String() string {
	if d == TX {
		return "tx"
	}
	return "rx"
}

// CoreStatus is the lifecycle state of an lcore slot.
type CoreStatus int

const (
	CoreUnuse CoreStatus = iota
	CoreIdle
	CoreRunning
	CoreStopped
)

func (s CoreStatus) String() string {
	switch s {
	case CoreIdle:
		return "idle"
	case CoreRunning:
		return "running"
	case CoreStopped:
		return "stopped"
	}
	return "unuse"
}

// AbilityOp is the per-port, per-direction transform kind.
type AbilityOp int

const (
	OpNone AbilityOp = iota
	OpAddVLAN
	OpDelVLAN
)

func (o AbilityOp) String() string {
	switch o {
	case OpAddVLAN:
		return "add_vlan"
	case OpDelVLAN:
		return "del_vlan"
	}
	return "none"
}

// Flavor is the runtime-selected capability set that replaces the
// original source's compile-time spp_vf / spp_mirror split.
type Flavor struct {
	Name                  string
	SupportsClassifierTbl bool
	MaxTxForMirror        int
}

// ProcessType reports the wire string used in the "process_type" response
// field, indexed by worker-process kind.
func (f Flavor) ProcessType() string {
	switch f.Name {
	case "vf":
		return "vf"
	case "mirror":
		return "mirror"
	}
	return "none"
}

var FlavorVF = Flavor{Name: "vf", SupportsClassifierTbl: true, MaxTxForMirror: 0}
var FlavorMirror = Flavor{Name: "mirror", SupportsClassifierTbl: false, MaxTxForMirror: 2}

// Size limits and sentinels from the data model.
const (
	MaxVID      = 4095 // sentinel meaning "unset"
	NameMax     = 64
	AbilMax     = 4
	MaxEthPorts = 128
)

// PerTypeLimits returns the (maxRx, maxTx) attach limits for a worker type.
// -1 means unlimited.
func PerTypeLimits(t WorkerType, f Flavor) (maxRx, maxTx int) {
	switch t {
	case FWD:
		return 1, 1
	case MRG:
		return -1, 1
	case CLS:
		return 1, -1
	case MIR:
		return 1, f.MaxTxForMirror
	}
	return 0, 0
}
