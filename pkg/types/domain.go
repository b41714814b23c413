package types

// ModelMemoryInfo summarizes one tracked model artifact for /status.
type ModelMemoryInfo struct {
	// Stable identifier for the model.
	// example: tinyllama-q4
	ID string `json:"id" example:"tinyllama-q4"`
	// Current tracked footprint in bytes (compressed size when compressed).
	// example: 1048576
	SizeBytes int64 `json:"size_bytes" example:"1048576"`
	// Footprint at allocation time, before any reshaping.
	// example: 4194304
	OriginalBytes int64 `json:"original_bytes" example:"4194304"`
	// Allocation time (unix seconds).
	// example: 1700000000
	AllocatedAt int64 `json:"allocated_at_unix" example:"1700000000"`
	// Last access time (unix seconds).
	// example: 1700000100
	LastAccessed int64 `json:"last_accessed_unix" example:"1700000100"`
	// Number of recorded accesses.
	// example: 42
	AccessCount uint64 `json:"access_count" example:"42"`
	// Whether the resident payload is compressed.
	// example: false
	Compressed bool `json:"compressed" example:"false"`
	// Whether the payload has been swapped to disk.
	// example: false
	Swapped bool `json:"swapped" example:"false"`
}

// MemoryStats is the memory manager section of /status.
type MemoryStats struct {
	// Bytes currently tracked in memory across all resident models.
	// example: 2097152
	UsedBytes int64 `json:"used_bytes" example:"2097152"`
	// Configured memory ceiling in bytes.
	// example: 8589934592
	MaxBytes int64 `json:"max_bytes" example:"8589934592"`
	// Highest tracked usage observed since start.
	// example: 4194304
	PeakBytes int64 `json:"peak_bytes" example:"4194304"`
	// Per-model breakdown.
	Models []ModelMemoryInfo `json:"models"`
	// Total payloads compressed since start.
	// example: 3
	CompressionsTotal uint64 `json:"compressions_total" example:"3"`
	// Total payloads swapped to disk since start.
	// example: 1
	SwapsTotal uint64 `json:"swaps_total" example:"1"`
	// Total payloads restored from the swap store since start.
	// example: 1
	RestoresTotal uint64 `json:"restores_total" example:"1"`
	// Optimization passes run since start.
	// example: 12
	OptimizePasses uint64 `json:"optimize_passes" example:"12"`
	// Configured buffer pool slot count.
	// example: 10
	PoolSize int `json:"pool_size" example:"10"`
	// Pool slots currently available.
	// example: 8
	PoolAvailable int `json:"pool_available" example:"8"`
	// Buffer acquisitions served from the pool.
	// example: 150
	PoolHits uint64 `json:"pool_hits" example:"150"`
	// Buffer acquisitions that allocated outside the pool.
	// example: 4
	PoolMisses uint64 `json:"pool_misses" example:"4"`
}

// CacheTierStats reports counters for a single cache tier.
type CacheTierStats struct {
	// Tier name (l1, l2, l3).
	// example: l1
	Level string `json:"level" example:"l1"`
	// Lookups answered by this tier.
	// example: 90
	Hits uint64 `json:"hits" example:"90"`
	// Lookups that passed through this tier.
	// example: 10
	Misses uint64 `json:"misses" example:"10"`
	// Entries evicted by capacity pressure.
	// example: 5
	Evictions uint64 `json:"evictions" example:"5"`
	// Entries dropped because their TTL had passed.
	// example: 2
	Expirations uint64 `json:"expirations" example:"2"`
	// Entries currently stored.
	// example: 120
	Entries int `json:"entries" example:"120"`
	// Aggregate payload bytes currently stored.
	// example: 1048576
	SizeBytes int64 `json:"size_bytes" example:"1048576"`
}

// CacheStats is the cache manager section of /status.
type CacheStats struct {
	// Per-tier counters in lookup order.
	Tiers []CacheTierStats `json:"tiers"`
	// Lookups that found a value in any tier.
	// example: 90
	Hits uint64 `json:"hits" example:"90"`
	// Lookups that found nothing.
	// example: 10
	Misses uint64 `json:"misses" example:"10"`
	// Overall hit rate in [0,1].
	// example: 0.9
	HitRate float64 `json:"hit_rate" example:"0.9"`
	// Total set operations.
	// example: 40
	Sets uint64 `json:"sets" example:"40"`
	// Total delete operations.
	// example: 3
	Deletes uint64 `json:"deletes" example:"3"`
	// Entries promoted into a higher tier after a lower-tier hit.
	// example: 7
	Promotions uint64 `json:"promotions" example:"7"`
}

// StreamStats is the stream processor section of /status.
type StreamStats struct {
	// Sessions created since start.
	// example: 25
	StreamsCreated uint64 `json:"streams_created" example:"25"`
	// Sessions currently open or draining.
	// example: 2
	StreamsActive int `json:"streams_active" example:"2"`
	// Output units written across all sessions.
	// example: 12000
	UnitsEmitted uint64 `json:"units_emitted" example:"12000"`
	// Chunks delivered to consumers (batched or single).
	// example: 1800
	ChunksEmitted uint64 `json:"chunks_emitted" example:"1800"`
	// Batches flushed by size, timeout, or end-of-stream.
	// example: 300
	BatchesFlushed uint64 `json:"batches_flushed" example:"300"`
}
