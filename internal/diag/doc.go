// Package diag defines the diagnostic model shared by tree producers,
// passes and the baseline harness.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced while building or transforming trees.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag performs no formatting beyond the stable reference form
// ("<id><span>", see refs.go) that recorded diagnostics files and tree
// dumps depend on. Human-oriented rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Diagnostics are data, never control flow: malformed input becomes missing
// tokens plus diagnostics, and processing continues. Producers use a
// diag.Reporter to decouple emission from storage; BagReporter aggregates
// into a Bag, which supports sorting, deduplication and merging.
//
// Keep the data model deterministic: any new field must serialise stably so
// the harness can compare recorded diagnostics across runs and platforms.
package diag
