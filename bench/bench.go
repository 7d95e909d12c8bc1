package bench

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/venkatamutyala/server-benchmark-scripts/utils"
)

// Runner executes fio once per selected pattern, strictly in sequence, and
// guarantees scratch file removal on every exit path.
type Runner struct {
	plan    Plan
	results []PatternResult

	// invoke runs one fio child process and returns its stdout. Replaced in
	// tests.
	invoke func(ctx context.Context, args []string) ([]byte, error)
}

// NewRunner builds a Runner for the given plan.
func NewRunner(plan Plan) *Runner {
	r := &Runner{plan: plan}
	r.invoke = r.invokeFio
	return r
}

// Results returns the per-pattern results collected so far. Priming writes
// are never recorded.
func (r *Runner) Results() []PatternResult {
	return r.results
}

// sharedArgs is the parameter set every invocation carries: async direct
// I/O bypassing the page cache, aggregate reporting, computed size.
func (r *Runner) sharedArgs(name string) []string {
	return []string{
		"--name=" + name,
		"--filename=" + r.plan.ScratchPath,
		"--size=" + fmt.Sprintf("%dk", r.plan.FileSizeKiB),
		"--ioengine=libaio",
		"--direct=1",
		"--group_reporting",
		"--output-format=json",
	}
}

// patternArgs overlays the per-pattern parameters on the shared set.
func (r *Runner) patternArgs(p Pattern) []string {
	ps := presets[p]
	args := append(r.sharedArgs(p.String()),
		"--rw="+ps.rw,
		"--bs="+ps.blockSize,
		fmt.Sprintf("--runtime=%d", r.plan.RuntimeSeconds),
		"--time_based",
	)
	if ps.mixRead > 0 {
		args = append(args, fmt.Sprintf("--rwmixread=%d", ps.mixRead))
	}
	return args
}

// primeArgs is a plain sequential write that lays out the scratch file so a
// read pattern has data to read. No time limit: it ends when the file is
// fully written.
func (r *Runner) primeArgs() []string {
	return append(r.sharedArgs("prime"), "--rw=write", "--bs=1M")
}

// Run executes the selected patterns in order. Any fio failure aborts the
// whole run; the scratch file is removed regardless.
func (r *Runner) Run(ctx context.Context, patterns []Pattern) error {
	defer r.cleanup()

	for _, p := range patterns {
		if presets[p].needsFile && !r.scratchExists() {
			utils.LogMessage(fmt.Sprintf("Scratch file missing, priming write before %s...", p), false)
			if _, err := r.invoke(ctx, r.primeArgs()); err != nil {
				return fmt.Errorf("priming write for %s failed: %w", p, err)
			}
		}

		utils.LogMessage(fmt.Sprintf("Running %s (%s)...", p, p.Description()), false)
		out, err := r.invoke(ctx, r.patternArgs(p))
		if err != nil {
			return fmt.Errorf("fio %s failed: %w", p, err)
		}

		result, perr := parseFioOutput(p, out)
		if perr != nil {
			utils.LogMessage(fmt.Sprintf("Could not parse fio output for %s: %v", p, perr), false)
			continue
		}
		r.results = append(r.results, result)
	}
	return nil
}

func (r *Runner) scratchExists() bool {
	_, err := os.Stat(r.plan.ScratchPath)
	return err == nil
}

// cleanup removes the scratch file, best effort.
func (r *Runner) cleanup() {
	if err := os.Remove(r.plan.ScratchPath); err != nil && !os.IsNotExist(err) {
		utils.LogMessage(fmt.Sprintf("Could not remove scratch file %s: %v", r.plan.ScratchPath, err), false)
	}
}

func (r *Runner) invokeFio(ctx context.Context, args []string) ([]byte, error) {
	if r.plan.Debug {
		utils.LogMessage(fmt.Sprintf("exec: %s %s", r.plan.FioPath, strings.Join(args, " ")), true)
	}
	cmd := exec.CommandContext(ctx, r.plan.FioPath, args...)
	cmd.Stderr = os.Stderr
	return cmd.Output()
}
