// Command spp-vf is the startup wiring for the command-runner agent: flag
// parsing, logger and metrics setup, lcore discovery, and a TCP listener
// that feeds received messages to the dispatcher one at a time. The
// socket framing here is a placeholder for the out-of-scope wire layer
// (SPEC_FULL.md §1) — a real deployment terminates spp-ctl's framed byte
// stream instead of newline-delimited JSON.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jangwonpark74/spp/internal/agentlog"
	"github.com/jangwonpark74/spp/internal/commit"
	"github.com/jangwonpark74/spp/internal/coreinfo"
	"github.com/jangwonpark74/spp/internal/dispatch"
	"github.com/jangwonpark74/spp/internal/metrics"
	"github.com/jangwonpark74/spp/internal/request"
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

var (
	ctlAddr    = flag.String("ctl-addr", "127.0.0.1:5555", "spp-ctl controller address to listen on")
	metricAddr = flag.String("metric-addr", "127.0.0.1:9552", "Prometheus metrics listen address")
	flavorFlag = flag.String("flavor", "vf", "worker flavor: vf or mirror")
	maxPorts   = flag.Int("max-ports-per-kind", wkspec.MaxEthPorts, "pre-allocated ports per kind")
	numWorkers = flag.Int("num-workers", 16, "size of the dense worker-id pool")
	clientID   = flag.Int("client-id", 0, "client id reported to the controller")
)

func main() {
	flag.Parse()

	if err := agentlog.Init(); err != nil {
		fmt.Println("agentlog init:", err)
		return
	}

	flavor := wkspec.FlavorVF
	if *flavorFlag == "mirror" {
		flavor = wkspec.FlavorMirror
	}

	lcores := coreinfo.DiscoverLcores()
	nCores := 0
	for _, id := range lcores {
		if id+1 > nCores {
			nCores = id + 1
		}
	}

	mgr := state.NewManager(flavor, nCores, *maxPorts, *numWorkers)
	mgr.ClientID = *clientID
	for _, id := range lcores {
		if err := mgr.MarkCoreAvailable(id); err != nil {
			agentlog.Warn("marking lcore %d available: %v", id, err)
		}
	}

	d := &dispatch.Dispatcher{
		Manager: mgr,
		Parser:  request.JSONParser{},
		Ports:   stubPortPublisher{},
		Workers: stubWorkerNotifier{},
	}

	go serveMetrics(*metricAddr)

	if err := runControlLoop(*ctlAddr, d); err != nil {
		agentlog.Fatal("control loop: %v", err)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	agentlog.Info("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		agentlog.Error("metrics server: %v", err)
	}
}

// runControlLoop accepts a single persistent connection from spp-ctl, as
// described in SPEC_FULL.md §6, and feeds each newline-delimited message
// to the dispatcher. An exit command ends the loop and returns nil; a
// dropped connection is a transient condition we simply wait out by
// accepting again.
func runControlLoop(addr string, d *dispatch.Dispatcher) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer l.Close()

	agentlog.Info("listening for spp-ctl on %s", addr)

	for {
		conn, err := l.Accept()
		if err != nil {
			agentlog.Error("accept: %v", err)
			continue
		}
		if handleConn(conn, d) {
			return nil
		}
	}
}

// handleConn serves one connection and reports whether the controller
// requested exit.
func handleConn(conn net.Conn, d *dispatch.Dispatcher) bool {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		outcome := d.ExecCmds(scanner.Bytes())

		if err := writeJSON(conn, outcome.Response); err != nil {
			agentlog.Error("write response: %v", err)
			return false
		}
		if outcome.Terminate {
			agentlog.Info("exit command received, closing connection")
			return true
		}
	}
	return false
}

func writeJSON(conn net.Conn, resp map[string]interface{}) error {
	enc := jsonEncoder(conn)
	return enc(resp)
}
