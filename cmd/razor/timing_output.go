package main

import (
	"fmt"
	"io"
	"time"

	"github.com/ajaybhargavb/Razor/internal/pipeline"
)

// printStageTimings writes one line per recorded stage, plus one line per
// pass when passes is non-empty.
func printStageTimings(out io.Writer, timings pipeline.Timings, passes []pipeline.PassTiming) {
	if out == nil {
		return
	}
	if timings.Has(pipeline.StageParse) {
		fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(pipeline.StageParse)))
	}
	if timings.Has(pipeline.StageLower) {
		fmt.Fprintf(out, "lowered %.1f ms\n", toMillis(timings.Duration(pipeline.StageLower)))
	}
	for _, p := range passes {
		fmt.Fprintf(out, "  %s %.1f ms\n", p.Name, toMillis(p.Elapsed))
	}
	if timings.Has(pipeline.StageDump) {
		fmt.Fprintf(out, "dumped %.1f ms\n", toMillis(timings.Duration(pipeline.StageDump)))
	}
	if timings.Has(pipeline.StageVerify) {
		fmt.Fprintf(out, "verified %.1f ms\n", toMillis(timings.Duration(pipeline.StageVerify)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
