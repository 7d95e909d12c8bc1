package volume

import (
	"bufio"
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	gdisk "github.com/shirou/gopsutil/v4/disk"
)

func TestEligible(t *testing.T) {
	cases := []struct {
		device string
		want   bool
	}{
		{"/dev/sda1", true},
		{"/dev/sdb", true},
		{"/dev/nvme0n1p2", true},
		{"/dev/vda1", true},
		{"/dev/hda1", true},
		{"/dev/dm-0", true},
		{"/dev/md127", true},
		{"/dev/mapper/vg0-root", true},
		{"tmpfs", false},
		{"proc", false},
		{"overlay", false},
		{"/dev/loop3", false},
		{"cgroup2", false},
	}
	for _, c := range cases {
		if got := Eligible(c.device); got != c.want {
			t.Errorf("Eligible(%q) = %v, want %v", c.device, got, c.want)
		}
	}
}

func TestFilterPartitions(t *testing.T) {
	partitions := []gdisk.PartitionStat{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
		{Device: "/dev/nvme0n1p1", Mountpoint: "/data", Fstype: "xfs"},
		{Device: "/dev/loop0", Mountpoint: "/snap/core", Fstype: "squashfs"},
	}

	kept := FilterPartitions(partitions)
	if len(kept) != 2 {
		t.Fatalf("kept %d partitions, want 2: %+v", len(kept), kept)
	}
	if kept[0].Device != "/dev/sda1" || kept[1].Device != "/dev/nvme0n1p1" {
		t.Errorf("unexpected filter result: %+v", kept)
	}
}

func TestFilterPartitionsEmpty(t *testing.T) {
	partitions := []gdisk.PartitionStat{
		{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
		{Device: "proc", Mountpoint: "/proc", Fstype: "proc"},
	}
	if kept := FilterPartitions(partitions); len(kept) != 0 {
		t.Errorf("expected no eligible partitions, got %+v", kept)
	}
}

func TestBuildEntries(t *testing.T) {
	partitions := []gdisk.PartitionStat{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
	}
	usage := func(path string) (*gdisk.UsageStat, error) {
		return &gdisk.UsageStat{Path: path, Free: 42 << 20}, nil
	}

	entries, err := buildEntries(partitions, usage)
	if err != nil {
		t.Fatalf("buildEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].MountPoint != "/" || entries[0].FreeBytes != 42<<20 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestBuildEntriesNoVolumes(t *testing.T) {
	partitions := []gdisk.PartitionStat{
		{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
		{Device: "overlay", Mountpoint: "/var/lib/docker", Fstype: "overlay"},
	}
	usage := func(path string) (*gdisk.UsageStat, error) {
		return &gdisk.UsageStat{Path: path}, nil
	}

	if _, err := buildEntries(partitions, usage); !errors.Is(err, ErrNoVolumesFound) {
		t.Errorf("want ErrNoVolumesFound, got %v", err)
	}
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		input     string
		n         int
		wantIndex int
		wantQuit  bool
		wantErr   bool
	}{
		{"1", 3, 0, false, false},
		{"3", 3, 2, false, false},
		{"2\n", 3, 1, false, false},
		{" 2 ", 3, 1, false, false},
		{"4", 3, 0, true, false}, // quit sentinel = n+1
		{"5", 3, 0, false, true}, // beyond the sentinel
		{"0", 3, 0, false, true},
		{"-1", 3, 0, false, true},
		{"abc", 3, 0, false, true},
		{"", 3, 0, false, true},
		{"1.5", 3, 0, false, true},
	}
	for _, c := range cases {
		index, quit, err := ParseSelection(c.input, c.n)
		if c.wantErr {
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("ParseSelection(%q, %d): want ErrInvalidSelection, got %v", c.input, c.n, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSelection(%q, %d): unexpected error: %v", c.input, c.n, err)
			continue
		}
		if quit != c.wantQuit || index != c.wantIndex {
			t.Errorf("ParseSelection(%q, %d) = (%d, %v), want (%d, %v)",
				c.input, c.n, index, quit, c.wantIndex, c.wantQuit)
		}
	}
}

func TestChoose(t *testing.T) {
	entries := []Entry{
		{MountPoint: "/data", Device: "/dev/sdb1", Fstype: "ext4", FreeBytes: 1 << 30},
		{MountPoint: "/scratch", Device: "/dev/nvme0n1p1", Fstype: "xfs", FreeBytes: 2 << 30},
	}

	var out bytes.Buffer
	entry, quit, err := Choose(bufio.NewReader(strings.NewReader("2\n")), &out, entries)
	if err != nil || quit {
		t.Fatalf("Choose: err=%v quit=%v", err, quit)
	}
	if entry.MountPoint != "/scratch" {
		t.Errorf("chose %q, want /scratch", entry.MountPoint)
	}
	menu := out.String()
	if !strings.Contains(menu, "1) /data") || !strings.Contains(menu, "3) Quit") {
		t.Errorf("menu missing expected lines:\n%s", menu)
	}
}

func TestChooseQuit(t *testing.T) {
	entries := []Entry{{MountPoint: "/data", Device: "/dev/sdb1"}}
	var out bytes.Buffer
	_, quit, err := Choose(bufio.NewReader(strings.NewReader("2\n")), &out, entries)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if !quit {
		t.Error("sentinel selection should quit")
	}
}

func TestChooseInvalid(t *testing.T) {
	entries := []Entry{{MountPoint: "/data", Device: "/dev/sdb1"}}
	var out bytes.Buffer
	_, _, err := Choose(bufio.NewReader(strings.NewReader("nope\n")), &out, entries)
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("want ErrInvalidSelection, got %v", err)
	}
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	if err := CheckWritable(dir); err != nil {
		t.Errorf("temp dir should be writable: %v", err)
	}

	// No probe file may be left behind.
	matches, err := filepath.Glob(filepath.Join(dir, ".diskbench_probe_*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("probe files left behind: %v", matches)
	}
}

func TestCheckWritableMissingDir(t *testing.T) {
	err := CheckWritable(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrNotWritable) {
		t.Errorf("want ErrNotWritable, got %v", err)
	}
}
