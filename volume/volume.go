package volume

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gdisk "github.com/shirou/gopsutil/v4/disk"

	"github.com/venkatamutyala/server-benchmark-scripts/utils"
)

var (
	// ErrNoVolumesFound means the mount table contained no block-device-backed
	// volume matching a recognized device prefix.
	ErrNoVolumesFound = errors.New("no volumes found")

	// ErrInvalidSelection means the menu input was non-numeric or outside the
	// valid range.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNotWritable means the probe file could not be created in the chosen
	// directory.
	ErrNotWritable = errors.New("directory not writable")
)

// Recognized device-name prefixes for block-device-backed mounts:
// SCSI/SATA, NVMe, virtio, IDE, device-mapper and MD RAID.
var devicePrefixes = []string{"sd", "nvme", "vd", "hd", "dm-", "md"}

// Eligible reports whether a device node names a block device we are
// willing to benchmark. LVM volumes appear as /dev/mapper/<vg>-<lv>.
func Eligible(device string) bool {
	if strings.HasPrefix(device, "/dev/mapper/") {
		return true
	}
	name := filepath.Base(device)
	for _, prefix := range devicePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// FilterPartitions keeps only the block-device-backed entries of a mount
// table.
func FilterPartitions(partitions []gdisk.PartitionStat) []gdisk.PartitionStat {
	var kept []gdisk.PartitionStat
	for _, p := range partitions {
		if Eligible(p.Device) {
			kept = append(kept, p)
		}
	}
	return kept
}

type usageFunc func(path string) (*gdisk.UsageStat, error)

// buildEntries resolves a mount table into eligible volume entries.
func buildEntries(partitions []gdisk.PartitionStat, usage usageFunc) ([]Entry, error) {
	var entries []Entry
	for _, p := range FilterPartitions(partitions) {
		entry := Entry{
			MountPoint: p.Mountpoint,
			Device:     p.Device,
			Fstype:     p.Fstype,
		}
		if stat, err := usage(p.Mountpoint); err == nil {
			entry.FreeBytes = stat.Free
		} else {
			utils.LogMessage(fmt.Sprintf("Could not read usage for %s: %v", p.Mountpoint, err), true)
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoVolumesFound
	}
	return entries, nil
}

// List enumerates eligible mounted volumes with their free space.
func List() ([]Entry, error) {
	partitions, err := gdisk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to read mount table: %w", err)
	}
	return buildEntries(partitions, gdisk.Usage)
}

// ParseSelection interprets a 1-based menu choice against n items. The quit
// sentinel is n+1; anything else outside [1, n] or non-numeric is invalid.
func ParseSelection(input string, n int) (index int, quit bool, err error) {
	v, convErr := strconv.Atoi(strings.TrimSpace(input))
	if convErr != nil {
		return 0, false, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, strings.TrimSpace(input))
	}
	if v == n+1 {
		return 0, true, nil
	}
	if v < 1 || v > n {
		return 0, false, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidSelection, v, n+1)
	}
	return v - 1, false, nil
}

// Choose prints the numbered volume menu to w, reads one selection from r
// and resolves it. quit is true when the user picked the quit sentinel.
func Choose(r *bufio.Reader, w io.Writer, entries []Entry) (Entry, bool, error) {
	fmt.Fprintln(w, "Available volumes:")
	for i, e := range entries {
		fmt.Fprintf(w, "  %d) %s (%s, %s, free: %s)\n",
			i+1, e.MountPoint, e.Device, e.Fstype, utils.FormatSize(int64(e.FreeBytes)))
	}
	fmt.Fprintf(w, "  %d) Quit\n", len(entries)+1)
	fmt.Fprint(w, "Select volume: ")

	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return Entry{}, false, fmt.Errorf("%w: no input", ErrInvalidSelection)
	}

	index, quit, err := ParseSelection(line, len(entries))
	if err != nil || quit {
		return Entry{}, quit, err
	}
	return entries[index], false, nil
}

// CheckWritable verifies the directory accepts file creation by writing and
// removing a probe file.
func CheckWritable(dir string) error {
	probePath := filepath.Join(dir, fmt.Sprintf(".diskbench_probe_%d", time.Now().UnixNano()))
	f, err := os.Create(probePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	f.Close()
	os.Remove(probePath)
	return nil
}
