package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jangwonpark74/spp/internal/mutate"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// JSONParser is a reference implementation of the Parser contract, built
// directly from the wire tags command_proc.c emits/consumes
// ("classifier_table", "worker", "port", "status", "client_id", "exit").
// The real lexer/tokenizer is out of scope per SPEC_FULL.md §1; this
// exists so cmd/spp-vf has something concrete to wire against.
type JSONParser struct{}

type wireVLAN struct {
	Operation string `json:"operation"`
	ID        int    `json:"id"`
	PCP       int    `json:"pcp"`
}

type wireCommand struct {
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	ClsType   string    `json:"classifier_type"`
	VID       int       `json:"vlan"`
	MacAddr   string    `json:"mac_address"`
	Port      string    `json:"port"`
	RxTx      string    `json:"rxtx"`
	Name      string    `json:"name"`
	Core      int       `json:"core"`
	WorkerTyp string    `json:"worker_type"`
	Ability   *wireVLAN `json:"ability"`
}

type wireRequest struct {
	Commands []wireCommand `json:"commands"`
}

// Parse implements Parser.
func (JSONParser) Parse(raw []byte) (*Batch, *ParseError) {
	var wr wireRequest
	if err := json.Unmarshal(raw, &wr); err != nil {
		return nil, &ParseError{Code: WrongFormat, Msg: err.Error(), Index: 0, Total: 1}
	}

	b := &Batch{NofCmds: len(wr.Commands), Commands: make([]Command, len(wr.Commands))}

	for i, wc := range wr.Commands {
		cmd, perr := translate(wc, i, len(wr.Commands))
		if perr != nil {
			return nil, perr
		}
		b.Commands[i] = cmd

		switch wc.Type {
		case "status":
			b.IsRequestedStatus = true
		case "client_id":
			b.IsRequestedClientID = true
		case "exit":
			b.IsRequestedExit = true
		}
	}

	b.NofValidCmds = len(b.Commands)
	return b, nil
}

func translate(wc wireCommand, idx, total int) (Command, *ParseError) {
	action, ok := parseAction(wc.Action)

	switch wc.Type {
	case "classifier_table":
		if !ok {
			return Command{}, &ParseError{Code: InvalidValue, Msg: "action", Index: idx, Total: total}
		}
		kind, ref, perr := parsePortField(wc.Port, idx, total)
		if perr != nil {
			return Command{}, perr
		}
		_ = kind
		k := ClsMac
		vid := wkspec.MaxVID // mac-only commands never carry a vid
		if wc.ClsType == "vlan" {
			k = ClsVlan
			vid = wc.VID
		}
		return Command{Kind: k, Classifier: &ClassifierSpec{
			Action: action,
			VID:    vid,
			MacStr: wc.MacAddr,
			Port:   ref,
		}}, nil

	case "worker":
		if !ok {
			return Command{}, &ParseError{Code: InvalidValue, Msg: "action", Index: idx, Total: total}
		}
		wkType, err := wkspec.ParseWorkerType(wc.WorkerTyp)
		if err != nil {
			return Command{}, &ParseError{Code: InvalidValue, Msg: err.Error(), Index: idx, Total: total}
		}
		return Command{Kind: Worker, Worker: &WorkerSpec{
			Action:  action,
			Name:    wc.Name,
			LcoreID: wc.Core,
			WkType:  wkType,
		}}, nil

	case "port":
		if !ok {
			return Command{}, &ParseError{Code: InvalidValue, Msg: "action", Index: idx, Total: total}
		}
		_, ref, perr := parsePortField(wc.Port, idx, total)
		if perr != nil {
			return Command{}, perr
		}
		dir := wkspec.RX
		if wc.RxTx == "tx" {
			dir = wkspec.TX
		}
		abil := mutate.AbilitySpec{}
		if wc.Ability != nil {
			switch wc.Ability.Operation {
			case "add":
				abil.Op = wkspec.OpAddVLAN
			case "del":
				abil.Op = wkspec.OpDelVLAN
			}
			abil.VID = wc.Ability.ID
			abil.PCP = wc.Ability.PCP
		}
		return Command{Kind: Port, Port: &PortSpec{
			Action:     action,
			Port:       ref,
			RxTx:       dir,
			WorkerName: wc.Name,
			Ability:    abil,
		}}, nil

	case "status", "client_id", "exit":
		return Command{Kind: Other}, nil
	}

	return Command{}, &ParseError{Code: UnknownCmd, Detail: wc.Type, Index: idx, Total: total}
}

func parseAction(s string) (mutate.Action, bool) {
	switch s {
	case "add", "start":
		return mutate.Add, true
	case "del", "stop":
		return mutate.Del, true
	}
	return mutate.Add, false
}

func parsePortField(s string, idx, total int) (wkspec.PortKind, wkspec.PortRef, *ParseError) {
	var kindStr string
	var index int
	if _, err := fmt.Sscanf(strings.Replace(s, ":", " ", 1), "%s %d", &kindStr, &index); err != nil {
		return wkspec.UNDEF, wkspec.PortRef{}, &ParseError{Code: InvalidValue, Msg: "port", Index: idx, Total: total}
	}
	kind, err := wkspec.ParsePortKind(kindStr)
	if err != nil {
		return wkspec.UNDEF, wkspec.PortRef{}, &ParseError{Code: InvalidValue, Msg: err.Error(), Index: idx, Total: total}
	}
	return kind, wkspec.PortRef{Kind: kind, Index: index}, nil
}
