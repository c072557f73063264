// Package sysmon samples system-wide CPU and memory usage for the
// interactive status line.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of system-wide resource usage, in percent.
type Stats struct {
	CPUPercent float64
	MemPercent float64
}

// String renders the snapshot as a compact status fragment.
func (s Stats) String() string {
	return fmt.Sprintf("cpu %.0f%%  mem %.0f%%", s.CPUPercent, s.MemPercent)
}

// Sample takes one CPU and memory snapshot. CPU usage is measured as the
// delta since the previous call (interval 0), so the first sample of a
// process reads 0. Sampling errors degrade to zero values rather than
// propagating.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}
