// Package lower holds the tree transformation passes that turn a parsed
// document tree into the shape code generation consumes.
//
// Passes implement pipeline.Pass and are ordered by fixed integer
// priorities. The order is load-bearing: DesignTimeDirectivePass
// restructures class declarations and must run strictly before
// DirectiveClassifierPass, which classifies directive tokens by attaching
// span contexts. DocumentClassifierPass runs first and marks the primary
// namespace, class, and method blocks generated members are injected into.
//
// Every pass is referentially transparent over the input tree, works
// through the ir rewriter, and reports problems as diagnostics in the
// document bag, never as failures.
package lower
