// Package memory tracks the footprint of loaded model artifacts and keeps the
// total under a configured ceiling by compressing or swapping the least
// valuable payloads. It is structured into small files by concern:
//
//   - manager.go: core Manager type, Allocate/Touch/Release/Bytes.
//   - config.go: Config and package defaults; New applies defaults.
//   - record.go: internal record state and public Record snapshots.
//   - errors.go: error types and helpers (IsOutOfBudget, IsNotResident, ...).
//   - compress.go: Compress and the gen-checked internal variant.
//   - swap.go: SwapToDisk/Restore against the injected SwapStore.
//   - optimize.go: scoring, the reclamation pass, and the periodic Run loop.
//   - pool.go: fixed free list of reusable byte buffers.
//   - stats.go: Stats reporting for /status and metrics.
//   - compressor.go: Compressor capability (zstd default, nop for tests).
//   - swapstore.go: SwapStore capability (per-id files, atomic writes).
//
// Payload-reshaping operations (Compress, SwapToDisk, Restore, Release) are
// serialized among themselves so the payload of a record transitions through
// exactly one reshape at a time; bookkeeping operations (Allocate, Touch,
// Stats) only take the state mutex and never wait on reshaping I/O.
//
// External packages should use public methods only (New, Allocate, Touch,
// Compress, SwapToDisk, Restore, Release, GetBuffer, PutBuffer, Optimize,
// Run, Stats). Internal types are subject to change.
package memory
