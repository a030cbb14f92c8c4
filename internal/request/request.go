// Package request defines the parsed-request contract the (out-of-scope)
// lexer/tokenizer is assumed to implement: a tree of commands the
// dispatcher executes in order.
package request

import (
	"github.com/jangwonpark74/spp/internal/mutate"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// Kind is the dispatch tag of one command in a batch.
type Kind int

const (
	ClsMac Kind = iota
	ClsVlan
	Worker
	Port
	Other // status-only or exit — no mutation
)

// ClassifierSpec is the parsed payload of a CLS_MAC / CLS_VLAN command.
type ClassifierSpec struct {
	Action mutate.Action
	VID    int
	MacStr string
	Port   wkspec.PortRef
}

// WorkerSpec is the parsed payload of a WORKER command.
type WorkerSpec struct {
	Action  mutate.Action
	Name    string
	LcoreID int
	WkType  wkspec.WorkerType
}

// PortSpec is the parsed payload of a PORT command.
type PortSpec struct {
	Action     mutate.Action
	Port       wkspec.PortRef
	RxTx       wkspec.RxTx
	WorkerName string
	Ability    mutate.AbilitySpec
}

// Command is one entry in a request batch.
type Command struct {
	Kind       Kind
	Classifier *ClassifierSpec
	Worker     *WorkerSpec
	Port       *PortSpec
}

// Batch is a fully parsed controller message.
type Batch struct {
	NofCmds             int
	NofValidCmds        int
	IsRequestedClientID bool
	IsRequestedStatus   bool
	IsRequestedExit     bool
	Commands            []Command
}

// ErrorCode is the parser's error taxonomy, mapped to human-readable
// messages by internal/dispatch/parseerr.go per SPEC_FULL.md §4.5.
type ErrorCode int

const (
	WrongFormat ErrorCode = iota
	UnknownCmd
	NoParam
	InvalidType
	InvalidValue
	OtherError
)

// ParseError is returned by Parser.Parse when the raw request could not be
// compiled into a Batch. Index is the position of the offending command
// within the batch the parser was able to recover (commands before Index
// are presumed well-formed).
type ParseError struct {
	Code  ErrorCode
	Detail string
	Msg   string
	Index int // offending command's position within the batch
	Total int // number of result slots the batch would have produced
}

func (e *ParseError) Error() string { return e.Msg }

// Parser is the out-of-scope lexer/tokenizer contract: it turns raw
// controller bytes into a Batch, or reports where parsing broke down.
type Parser interface {
	Parse(raw []byte) (*Batch, *ParseError)
}
