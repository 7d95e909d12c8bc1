package bench

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/venkatamutyala/server-benchmark-scripts/utils"
)

var (
	// ErrInsufficientSpace means the 95% size target fell below the minimum
	// viable test file size.
	ErrInsufficientSpace = errors.New("insufficient free space")

	// ErrFioNotFound means the fio binary is not on PATH (or at the
	// configured location).
	ErrFioNotFound = errors.New("fio not found")
)

// MinFileKiB is the smallest test file worth benchmarking (10 MiB).
const MinFileKiB = 10 * 1024

// AvailKiB returns the unprivileged available space in the filesystem
// holding dir, in KiB.
func AvailKiB(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, fmt.Errorf("statfs %s failed: %w", dir, err)
	}
	return st.Bavail * uint64(st.Bsize) / 1024, nil
}

// SizeForAvail computes the test file size for a given available space.
// Integer KiB arithmetic keeps the result at or below the true 95% boundary.
func SizeForAvail(availKiB uint64) (uint64, error) {
	sizeKiB := availKiB / 100 * 95
	if sizeKiB < MinFileKiB {
		return 0, fmt.Errorf("%w: %d KiB available yields a %d KiB test file, minimum is %d KiB",
			ErrInsufficientSpace, availKiB, sizeKiB, MinFileKiB)
	}
	return sizeKiB, nil
}

// NewPlan validates the fio dependency and sizes the scratch file for
// targetDir.
func NewPlan(targetDir, fioPath, scratchName string, runtimeSeconds int, debug bool) (Plan, error) {
	resolved, err := exec.LookPath(fioPath)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %q: %v", ErrFioNotFound, fioPath, err)
	}

	availKiB, err := AvailKiB(targetDir)
	if err != nil {
		return Plan{}, err
	}
	sizeKiB, err := SizeForAvail(availKiB)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		TargetDir:      targetDir,
		ScratchPath:    filepath.Join(targetDir, scratchName),
		FileSizeKiB:    sizeKiB,
		RuntimeSeconds: runtimeSeconds,
		FioPath:        resolved,
		Debug:          debug,
	}
	utils.LogMessage(fmt.Sprintf("Plan: %s available on %s, test file %s at %s",
		utils.FormatSize(int64(availKiB)*1024), targetDir,
		utils.FormatSize(int64(sizeKiB)*1024), plan.ScratchPath), debug)
	return plan, nil
}
