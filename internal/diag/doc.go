// Package diag defines the diagnostic model shared by both minifier
// pipelines.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by the lexer / parser / emitter phases of either pipeline.
//   - Offer a light-weight Reporter contract so producers can emit
//     diagnostics without coupling to storage or formatting layers.
//   - Collect per-run diagnostics in a Sink filtered by the configured
//     warning level.
//
// # Severity scale
//
// Severity is an ordered integer scale where lower is more severe. Zero
// (SevError) is the most severe class and is also used for diagnostics
// synthesized at the pipeline boundary (emission-format failures, fatal
// recovery). The Sink keeps a diagnostic iff its severity is numerically
// at or below the configured threshold.
//
// # Consumers
//
//   - internal/diagfmt renders Diagnostics into text/json forms.
//   - the root package bundles Sink snapshots into Results.
//
// Package diag performs no IO and has no process-global state; every run
// owns its own Sink, which keeps concurrent invocations isolated.
package diag
