// Package stream turns raw generated output units into ordered, optionally
// batched chunks delivered through two surfaces: registered callbacks (push)
// and a bounded channel (pull). Each session runs one dispatcher goroutine
// over one bounded queue, so both surfaces observe the same order and a slow
// consumer eventually blocks the writer instead of growing a buffer.
//
// The package is split into focused files:
//   - processor.go: Processor, session registry, aggregate statistics
//   - session.go: Session state machine, batching, both delivery surfaces
//   - config.go: Config, SessionConfig and defaults
//   - sse.go: server-sent-event framing helper for transports
//   - errors.go: error constructors and predicates
package stream
