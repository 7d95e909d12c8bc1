package bench

import (
	"encoding/json"
	"fmt"
)

// fio --output-format=json shape, reduced to the fields we report. With
// --group_reporting there is a single aggregated job per invocation.
type fioOutput struct {
	Jobs []fioJob `json:"jobs"`
}

type fioJob struct {
	Jobname string      `json:"jobname"`
	Read    fioDirStats `json:"read"`
	Write   fioDirStats `json:"write"`
}

type fioDirStats struct {
	BW   float64 `json:"bw"` // KiB/s
	IOPS float64 `json:"iops"`
}

func parseFioOutput(p Pattern, out []byte) (PatternResult, error) {
	var parsed fioOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return PatternResult{}, fmt.Errorf("unmarshal fio json: %w", err)
	}
	if len(parsed.Jobs) == 0 {
		return PatternResult{}, fmt.Errorf("fio json contained no jobs")
	}

	result := PatternResult{Pattern: p}
	for _, job := range parsed.Jobs {
		result.ReadBWKiBps += job.Read.BW
		result.ReadIOPS += job.Read.IOPS
		result.WriteBWKiBps += job.Write.BW
		result.WriteIOPS += job.Write.IOPS
	}
	return result, nil
}

// SummaryLines renders the results table, one line per entry.
func SummaryLines(results []PatternResult) []string {
	if len(results) == 0 {
		return nil
	}
	lines := []string{
		"=== BENCHMARK RESULTS ===",
		fmt.Sprintf("%-12s %-14s %-12s %-14s %-12s", "Pattern", "Read MB/s", "Read IOPS", "Write MB/s", "Write IOPS"),
		fmt.Sprintf("%-12s %-14s %-12s %-14s %-12s", "-------", "---------", "---------", "----------", "----------"),
	}
	for _, res := range results {
		lines = append(lines, fmt.Sprintf("%-12s %-14.2f %-12.0f %-14.2f %-12.0f",
			res.Pattern,
			res.ReadBWKiBps/1024,
			res.ReadIOPS,
			res.WriteBWKiBps/1024,
			res.WriteIOPS))
	}
	return lines
}
