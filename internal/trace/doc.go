// Package trace records what the calculator is doing.
//
// It is the structured log of the tool: every CLI invocation, calculator
// operation and batch line can open a span, and the configured tracer writes
// begin/end events as text or NDJSON.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	calc eval --trace=- --trace-level=operation '2 ^ 100'
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events for a dump after a failure
//
// # Levels and scopes
//
// Events carry a scope; the level decides which scopes are emitted:
//
//   - LevelCommand: ScopeCommand (one CLI invocation)
//   - LevelOperation: plus ScopeOperation (one calculator operation)
//   - LevelDebug: plus ScopeStep (batch lines, cache lookups)
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeOperation, "pow")
//	defer span.End("")
package trace
