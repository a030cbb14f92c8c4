// Package coreinfo discovers the logical CPUs available to the process at
// startup, replacing the original source's external -l EAL core-mask
// argument with a runtime-detected default core table size.
package coreinfo

import (
	"strconv"

	"github.com/c9s/goprocinfo/linux"

	"github.com/jangwonpark74/spp/internal/agentlog"
)

// DiscoverLcores returns the lcore ids present on this host, read from
// /proc/cpuinfo. On any read failure it falls back to a single lcore (id
// 0) so the agent can still start in a constrained environment (e.g. a
// container without /proc mounted read-write).
func DiscoverLcores() []int {
	info, err := linux.ReadCPUInfo("/proc/cpuinfo")
	if err != nil {
		agentlog.Warn("coreinfo: falling back to single lcore: %v", err)
		return []int{0}
	}

	ids := make([]int, 0, len(info.Processors))
	for i, p := range info.Processors {
		id, err := strconv.Atoi(p.Processor)
		if err != nil {
			id = i
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []int{0}
	}
	return ids
}
