// Package dispatch implements exec_cmds: the request dispatcher that
// receives one parsed batch, executes its commands in order with
// all-or-stop-on-first-error semantics, and composes the response.
package dispatch

import (
	"github.com/jangwonpark74/spp/internal/agentlog"
	"github.com/jangwonpark74/spp/internal/commit"
	"github.com/jangwonpark74/spp/internal/metrics"
	"github.com/jangwonpark74/spp/internal/mutate"
	"github.com/jangwonpark74/spp/internal/request"
	"github.com/jangwonpark74/spp/internal/respond"
	"github.com/jangwonpark74/spp/internal/state"
)

// Dispatcher wires the state manager to its out-of-scope collaborators:
// the request parser and the dataplane port/worker publish contracts from
// internal/commit.
type Dispatcher struct {
	Manager *state.Manager
	Parser  request.Parser
	Ports   commit.PortPublisher
	Workers commit.WorkerNotifier
}

// Outcome is what the socket-handling loop (out of scope) needs to know
// after one request: the bytes to write back, and whether to terminate.
type Outcome struct {
	Response  map[string]interface{}
	Terminate bool
}

// ExecCmds runs one controller message through parse, dispatch, and
// response composition, per SPEC_FULL.md §4.3.
func (d *Dispatcher) ExecCmds(raw []byte) Outcome {
	batch, perr := d.Parser.Parse(raw)
	if perr != nil {
		return d.handleParseError(perr)
	}

	results := make([]respond.Result, len(batch.Commands))

	for i, cmd := range batch.Commands {
		err := d.dispatchOne(cmd)
		if err != nil {
			results[i] = respond.Result{Kind: respond.Failure, Message: "error occur"}
			for j := i + 1; j < len(results); j++ {
				results[j] = respond.Result{Kind: respond.Invalid}
			}
			recordFailure(err)
			recordInvalid(len(results) - i - 1)
			agentlog.Error("command %d failed: %v", i, err)
			break
		}
		results[i] = respond.Result{Kind: respond.Success}
		metrics.CommandsTotal.WithLabelValues("success").Inc()
	}

	if batch.IsRequestedExit {
		return Outcome{
			Response:  map[string]interface{}{"results": respond.BuildResults([]respond.Result{{Kind: respond.Success}})},
			Terminate: true,
		}
	}

	resp := map[string]interface{}{"results": respond.BuildResults(results)}

	if batch.IsRequestedClientID {
		resp["client_id"] = d.Manager.ClientID
		resp["process_type"] = d.Manager.Flavor.ProcessType()
	}
	if batch.IsRequestedStatus {
		resp["info"] = respond.BuildInfo(d.Manager)
	}

	return Outcome{Response: resp}
}

// recordFailure increments the counters for the one command that actually
// failed; the trailing run it invalidates is counted by recordInvalid.
// Only mutation-handler validation failures count as validation errors.
func recordFailure(err error) {
	metrics.CommandsTotal.WithLabelValues(respond.Failure.String()).Inc()
	if mutate.IsValidation(err) {
		metrics.ValidationErrorsTotal.Inc()
	}
}

func recordInvalid(n int) {
	if n > 0 {
		metrics.CommandsTotal.WithLabelValues("invalid").Add(float64(n))
	}
}

func (d *Dispatcher) dispatchOne(cmd request.Command) error {
	switch cmd.Kind {
	case request.ClsMac, request.ClsVlan:
		spec := cmd.Classifier
		if err := mutate.UpdateClassifier(d.Manager, spec.Action, spec.VID, spec.MacStr, spec.Port); err != nil {
			return err
		}
		return commit.Flush(d.Manager, d.Ports, d.Workers)

	case request.Worker:
		spec := cmd.Worker
		if err := mutate.UpdateWorker(d.Manager, spec.Action, spec.Name, spec.LcoreID, spec.WkType); err != nil {
			return err
		}
		return commit.Flush(d.Manager, d.Ports, d.Workers)

	case request.Port:
		spec := cmd.Port
		if err := mutate.UpdatePort(d.Manager, spec.Action, spec.Port, spec.RxTx, spec.WorkerName, spec.Ability); err != nil {
			return err
		}
		return commit.Flush(d.Manager, d.Ports, d.Workers)
	}

	// status-only / exit: no mutation
	return nil
}

func (d *Dispatcher) handleParseError(perr *request.ParseError) Outcome {
	msg := parseErrorMessage(perr)

	results := make([]respond.Result, perr.Total)
	for i := range results {
		switch {
		case i < perr.Index:
			results[i] = respond.Result{Kind: respond.Success}
		case i == perr.Index:
			results[i] = respond.Result{Kind: respond.Failure, Message: msg}
		default:
			results[i] = respond.Result{Kind: respond.Invalid}
		}
	}

	for _, r := range results {
		metrics.CommandsTotal.WithLabelValues(r.Kind.String()).Inc()
	}

	agentlog.Error("decode error at command %d: %s", perr.Index, msg)

	return Outcome{Response: map[string]interface{}{"results": respond.BuildResults(results)}}
}
