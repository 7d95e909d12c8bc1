package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/venkatamutyala/server-benchmark-scripts/bench"
	cfg "github.com/venkatamutyala/server-benchmark-scripts/config"
	"github.com/venkatamutyala/server-benchmark-scripts/sysinfo"
	"github.com/venkatamutyala/server-benchmark-scripts/utils"
	"github.com/venkatamutyala/server-benchmark-scripts/volume"
)

func main() {
	os.Exit(run())
}

func run() int {
	var target string
	var patternName string
	var runtimeSeconds int
	var assumeYes bool
	var debugFlag bool
	var showHelp bool
	var printSystemInfo bool

	flag.StringVar(&target, "target", "", "Directory to benchmark (skips the volume menu)")
	flag.StringVar(&patternName, "pattern", "", "Workload pattern: seq-write, seq-read, rand-write, rand-read, mixed-rw, all (skips the workload menu)")
	flag.IntVar(&runtimeSeconds, "runtime", 0, "Per-pattern fio runtime in seconds (default from config.json or 60)")
	flag.BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")
	flag.BoolVar(&debugFlag, "d", false, "Enable debug mode")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&printSystemInfo, "print", false, "Print system info and eligible volumes (alias: -list)")
	flag.BoolVar(&printSystemInfo, "list", false, "Alias for -print")
	flag.Parse()

	if showHelp {
		fmt.Println("Disk Benchmark Tool (fio front-end)")
		fmt.Println("Usage: diskbench [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Println("\nWithout options, volumes and workloads are chosen interactively.")
		return 0
	}

	configuration, err := cfg.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config.json, using default settings: %v\n", err)
	}

	debug := debugFlag || configuration.Debug
	if err := utils.InitLogging(configuration.LogFile, debug); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	if runtimeSeconds <= 0 {
		runtimeSeconds = configuration.RuntimeSeconds
	}

	if printSystemInfo {
		fmt.Println("=== System Resources Available for Benchmarking ===")
		sysinfo.Print(os.Stdout)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin := bufio.NewReader(os.Stdin)

	targetDir, quit, err := resolveTarget(target, stdin)
	if err != nil {
		utils.LogMessage(fmt.Sprintf("Volume selection failed: %v", err), false)
		return 1
	}
	if quit {
		utils.LogMessage("Quit selected, exiting.", false)
		return 0
	}

	if err := volume.CheckWritable(targetDir); err != nil {
		utils.LogMessage(fmt.Sprintf("Target check failed: %v", err), false)
		return 1
	}

	patterns, err := resolvePatterns(patternName, stdin)
	if err != nil {
		utils.LogMessage(fmt.Sprintf("Workload selection failed: %v", err), false)
		return 1
	}

	plan, err := bench.NewPlan(targetDir, configuration.FioPath, configuration.ScratchName, runtimeSeconds, debug)
	if err != nil {
		utils.LogMessage(fmt.Sprintf("Cannot build benchmark plan: %v", err), false)
		return 1
	}

	if !assumeYes && !confirm(stdin, os.Stdout, plan, len(patterns)) {
		utils.LogMessage("Aborted by user.", false)
		return 0
	}

	runner := bench.NewRunner(plan)
	if err := runner.Run(ctx, patterns); err != nil {
		utils.LogMessage(fmt.Sprintf("Benchmark run failed: %v", err), false)
		return 1
	}

	for _, line := range bench.SummaryLines(runner.Results()) {
		utils.LogMessage(line, false)
	}
	utils.LogMessage("Benchmark completed!", false)
	return 0
}

// resolveTarget returns the benchmark directory, either from the -target
// flag or via the interactive volume menu.
func resolveTarget(target string, stdin *bufio.Reader) (string, bool, error) {
	if target != "" {
		info, err := os.Stat(target)
		if err != nil {
			return "", false, fmt.Errorf("target %s not accessible: %w", target, err)
		}
		if !info.IsDir() {
			return "", false, fmt.Errorf("target %s is not a directory", target)
		}
		return target, false, nil
	}

	entries, err := volume.List()
	if err != nil {
		return "", false, err
	}
	entry, quit, err := volume.Choose(stdin, os.Stdout, entries)
	if err != nil || quit {
		return "", quit, err
	}
	return entry.MountPoint, false, nil
}

// resolvePatterns returns the workload list, either from the -pattern flag
// or via the interactive workload menu (1-5 single patterns, 6 = all).
func resolvePatterns(name string, stdin *bufio.Reader) ([]bench.Pattern, error) {
	if name != "" {
		return parsePatternName(name)
	}

	fmt.Println("Workload patterns:")
	for i, p := range bench.AllPatterns {
		fmt.Printf("  %d) %s\n", i+1, p.Description())
	}
	fmt.Printf("  %d) ALL TESTS\n", len(bench.AllPatterns)+1)
	fmt.Print("Select workload: ")

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("%w: no input", volume.ErrInvalidSelection)
	}
	v, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || v < 1 || v > len(bench.AllPatterns)+1 {
		return nil, fmt.Errorf("%w: %q", volume.ErrInvalidSelection, strings.TrimSpace(line))
	}
	if v == len(bench.AllPatterns)+1 {
		return bench.AllPatterns, nil
	}
	return []bench.Pattern{bench.AllPatterns[v-1]}, nil
}

func parsePatternName(name string) ([]bench.Pattern, error) {
	if strings.EqualFold(name, "all") {
		return bench.AllPatterns, nil
	}
	for _, p := range bench.AllPatterns {
		if strings.EqualFold(name, p.String()) {
			return []bench.Pattern{p}, nil
		}
	}
	return nil, fmt.Errorf("unknown pattern %q (want seq-write, seq-read, rand-write, rand-read, mixed-rw, or all)", name)
}

// confirm asks before a long-running test that fills most of the volume.
func confirm(stdin *bufio.Reader, w io.Writer, plan bench.Plan, patternCount int) bool {
	fmt.Fprintf(w, "About to run %d test(s) on %s with a %s scratch file (%ds each). Continue? (y/N): ",
		patternCount, plan.TargetDir, utils.FormatSize(int64(plan.FileSizeKiB)*1024), plan.RuntimeSeconds)
	line, _ := stdin.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

