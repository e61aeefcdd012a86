// Package trace provides a tracing subsystem for the document pipeline.
//
// The trace package tracks pipeline phases, per-document processing, and
// pass boundaries to help diagnose slow or surprising runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	razor verify --trace=- --trace-level=phase testdata
//
// # Architecture
//
// Two tracer implementations exist:
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-document events
//   - LevelDebug: everything including tree nodes
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: pipeline phases (parse, lower passes, dump)
//   - ScopeDocument: per-document processing
//   - ScopeNode: tree node level
//
// # Context Propagation
//
// Tracers are propagated through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
