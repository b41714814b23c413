// Package cache implements the tiered result cache: a bounded in-process LRU
// front (L1), a sqlite-backed durable tier (L2), and an optional injected
// extended tier (L3). Lookups walk the tiers in order and promote hits
// upward; values are stored as codec-encoded envelopes with lazy TTL expiry.
//
// The package is split into focused files:
//   - manager.go: Manager, tier chain walk, promotion, counters
//   - tier.go: the Tier storage contract and Level identifiers
//   - l1.go: in-process LRU tier bounded by entries and bytes
//   - sqlite.go: durable sqlite tier
//   - entry.go: the stored envelope
//   - codec.go: Codec capability and the JSON default
//   - key.go: deterministic cache key derivation
//   - config.go: Config and defaults
//   - stats.go: statistics snapshot
package cache
