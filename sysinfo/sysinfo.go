package sysinfo

import (
	"errors"
	"fmt"
	"io"

	gcpu "github.com/shirou/gopsutil/v4/cpu"
	gmem "github.com/shirou/gopsutil/v4/mem"

	"github.com/venkatamutyala/server-benchmark-scripts/utils"
	"github.com/venkatamutyala/server-benchmark-scripts/volume"
)

// Print writes a system summary: CPU, memory, and the candidate volumes
// the benchmark can target.
func Print(w io.Writer) {
	cpuInfo, err := gcpu.Info()
	if err != nil || len(cpuInfo) == 0 {
		fmt.Fprintln(w, "CPU Info: Unable to retrieve CPU information")
	} else {
		totalCores, _ := gcpu.Counts(true)
		fmt.Fprintf(w, "CPU Info: Model: %s, Cores: %d, Frequency: %.2f MHz\n",
			cpuInfo[0].ModelName, totalCores, cpuInfo[0].Mhz)
	}

	vm, err := gmem.VirtualMemory()
	if err != nil {
		fmt.Fprintln(w, "Memory Info: Unable to retrieve memory information")
	} else {
		fmt.Fprintf(w, "Memory Info: Total: %s, Available: %s\n",
			utils.FormatSize(int64(vm.Total)), utils.FormatSize(int64(vm.Available)))
	}

	entries, err := volume.List()
	if err != nil {
		if errors.Is(err, volume.ErrNoVolumesFound) {
			fmt.Fprintln(w, "Volumes: None eligible for benchmarking")
		} else {
			fmt.Fprintf(w, "Volumes: Unable to enumerate: %v\n", err)
		}
		return
	}
	fmt.Fprintln(w, "Volumes eligible for benchmarking:")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s (%s, %s, free: %s)\n",
			e.MountPoint, e.Device, e.Fstype, utils.FormatSize(int64(e.FreeBytes)))
	}
}
