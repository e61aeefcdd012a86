package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/trace"
)

// Runner drives an ordered sequence of passes over a document. Ordering is
// by Pass.Priority, lower first; equal priorities run in registration
// order.
type Runner struct {
	// Progress receives per-pass events when set.
	Progress ProgressSink

	passes []Pass
}

// NewRunner creates a runner over the given passes.
func NewRunner(passes ...Pass) *Runner {
	r := &Runner{}
	r.Add(passes...)
	return r
}

// Add registers more passes.
func (r *Runner) Add(passes ...Pass) {
	r.passes = append(r.passes, passes...)
}

// Passes returns the registered passes in execution order.
func (r *Runner) Passes() []Pass {
	ordered := make([]Pass, len(r.passes))
	copy(ordered, r.passes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	return ordered
}

// RunResult captures the final tree and per-pass timings of a run.
type RunResult struct {
	Root        ir.Node
	PassTimings []PassTiming
}

// Run executes the passes over doc.Root and returns the final tree. The
// input document is not modified beyond its bag; ctx is checked between
// passes so a canceled run stops at the next pass boundary.
func (r *Runner) Run(ctx context.Context, doc *Document) (RunResult, error) {
	var result RunResult
	if ctx == nil {
		ctx = context.Background()
	}
	if doc == nil {
		return result, fmt.Errorf("missing document")
	}
	if doc.Root == nil {
		return result, fmt.Errorf("document has no tree")
	}

	tracer := trace.FromContext(ctx)
	file := ""
	if doc.File != nil {
		file = doc.File.Path
	}

	ordered := r.Passes()
	root := doc.Root
	result.PassTimings = make([]PassTiming, 0, len(ordered))
	for _, p := range ordered {
		if err := ctx.Err(); err != nil {
			emitPass(r.Progress, file, p.Name(), StatusError, err, 0)
			return result, err
		}

		span := trace.Begin(tracer, trace.ScopePass, "lower:"+p.Name(), 0)
		emitPass(r.Progress, file, p.Name(), StatusWorking, nil, 0)
		start := time.Now()

		next := p.Execute(doc, root)
		elapsed := time.Since(start)
		span.End("")

		if next == nil {
			err := fmt.Errorf("pass %q returned no tree", p.Name())
			emitPass(r.Progress, file, p.Name(), StatusError, err, elapsed)
			return result, err
		}
		root = next
		result.PassTimings = append(result.PassTimings, PassTiming{Name: p.Name(), Elapsed: elapsed})
		emitPass(r.Progress, file, p.Name(), StatusDone, nil, elapsed)
	}

	result.Root = root
	return result, nil
}

func emitPass(sink ProgressSink, file, pass string, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Pass: pass, Stage: StageLower, Status: status, Err: err, Elapsed: elapsed})
}
