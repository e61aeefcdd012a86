// Package pipeline orchestrates the document processing pipeline: a
// producer builds the initial tree, an ordered sequence of passes lowers
// it, and the result is handed to serialization or further tooling.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/source"
	"github.com/ajaybhargavb/Razor/internal/trace"
)

// ProcessRequest configures a full parse-and-lower run over one file.
type ProcessRequest struct {
	Parser   Parser
	Passes   []Pass
	Options  ParseOptions
	Progress ProgressSink
}

// ProcessResult captures the document, the final tree, and timings.
type ProcessResult struct {
	Document    *Document
	Root        ir.Node
	Timings     Timings
	PassTimings []PassTiming
}

// Process parses file and runs the configured passes over the resulting
// tree. Malformed input never fails the run: it surfaces as diagnostics in
// the returned document's bag. Errors are reserved for misuse and
// cancellation.
func Process(ctx context.Context, file *source.File, req *ProcessRequest) (ProcessResult, error) {
	var result ProcessResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing process request")
	}
	if req.Parser == nil {
		return result, fmt.Errorf("missing parser")
	}
	if file == nil {
		return result, fmt.Errorf("missing file")
	}

	tracer := trace.FromContext(ctx)
	emitStage(req.Progress, file.Path, StageParse, StatusQueued, nil, 0)

	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", 0)
	emitStage(req.Progress, file.Path, StageParse, StatusWorking, nil, 0)
	parseStart := time.Now()
	doc := req.Parser.Parse(file, req.Options)
	parseElapsed := time.Since(parseStart)
	parseSpan.End(file.Path)

	if doc == nil || doc.Root == nil {
		err := fmt.Errorf("parser produced no tree for %q", file.Path)
		emitStage(req.Progress, file.Path, StageParse, StatusError, err, parseElapsed)
		return result, err
	}
	result.Document = doc
	result.Timings.Set(StageParse, parseElapsed)
	emitStage(req.Progress, file.Path, StageParse, StatusDone, nil, parseElapsed)

	runner := NewRunner(req.Passes...)
	runner.Progress = req.Progress
	lowerStart := time.Now()
	runRes, err := runner.Run(ctx, doc)
	result.Timings.Set(StageLower, time.Since(lowerStart))
	result.PassTimings = runRes.PassTimings
	if err != nil {
		return result, err
	}

	result.Root = runRes.Root
	return result, nil
}

func emitStage(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
