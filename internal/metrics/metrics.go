// Package metrics exposes the Prometheus counters the command runner
// increments: commands processed (by result), flushes (by result), and
// validation failures. cmd/spp-vf serves these over HTTP; the core
// packages only ever touch the package-level vars below.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CommandsTotal counts dispatched commands, labeled by their final
	// result ("success", "error", "invalid").
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spp",
		Name:      "commands_total",
		Help:      "Number of commands processed by the command runner, by result.",
	}, []string{"result"})

	// FlushTotal counts flush attempts, labeled "success" or "error".
	FlushTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spp",
		Name:      "flush_total",
		Help:      "Number of flush (commit) attempts, by result.",
	}, []string{"result"})

	// ValidationErrorsTotal counts mutation handler precondition failures.
	ValidationErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "spp",
		Name:      "validation_errors_total",
		Help:      "Number of update_classifier/update_worker/update_port validation failures.",
	})
)

// Registry is the Prometheus registry cmd/spp-vf serves; a dedicated
// registry (rather than the global default) keeps this package testable
// without cross-test registration panics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(CommandsTotal, FlushTotal, ValidationErrorsTotal)
}
