// bench/types.go
package bench

// Pattern is one of the fixed fio workload presets.
type Pattern int

const (
	SeqWrite Pattern = iota
	SeqRead
	RandWrite
	RandRead
	MixedRW
)

// AllPatterns is the fixed ALL TESTS execution order.
var AllPatterns = []Pattern{SeqWrite, SeqRead, RandWrite, RandRead, MixedRW}

func (p Pattern) String() string {
	switch p {
	case SeqWrite:
		return "seq-write"
	case SeqRead:
		return "seq-read"
	case RandWrite:
		return "rand-write"
	case RandRead:
		return "rand-read"
	case MixedRW:
		return "mixed-rw"
	}
	return "unknown"
}

// Description is the human menu label for the pattern.
func (p Pattern) Description() string {
	switch p {
	case SeqWrite:
		return "Sequential write (1M blocks)"
	case SeqRead:
		return "Sequential read (1M blocks)"
	case RandWrite:
		return "Random write (4k blocks)"
	case RandRead:
		return "Random read (4k blocks)"
	case MixedRW:
		return "Mixed random read/write (4k blocks, 70/30)"
	}
	return "unknown"
}

// preset holds the per-pattern fio parameter overlay.
type preset struct {
	rw        string
	blockSize string
	mixRead   int  // rwmixread percentage, 0 when not a mixed workload
	needsFile bool // read workloads require the scratch file to exist
}

var presets = map[Pattern]preset{
	SeqWrite:  {rw: "write", blockSize: "1M"},
	SeqRead:   {rw: "read", blockSize: "1M", needsFile: true},
	RandWrite: {rw: "randwrite", blockSize: "4k"},
	RandRead:  {rw: "randread", blockSize: "4k", needsFile: true},
	MixedRW:   {rw: "randrw", blockSize: "4k", mixRead: 70},
}

// Plan is the computed benchmark configuration for one run.
type Plan struct {
	TargetDir      string
	ScratchPath    string
	FileSizeKiB    uint64
	RuntimeSeconds int
	FioPath        string
	Debug          bool
}

// PatternResult holds the fio-reported throughput for one completed pattern.
type PatternResult struct {
	Pattern      Pattern
	ReadBWKiBps  float64
	ReadIOPS     float64
	WriteBWKiBps float64
	WriteIOPS    float64
}
