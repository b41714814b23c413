package memory

import (
	"sort"

	"runnerd/pkg/types"
)

// Stats returns a snapshot of the memory accounting for /status and metrics.
func (m *Manager) Stats() types.MemoryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	models := make([]types.ModelMemoryInfo, 0, len(m.records))
	for _, rec := range m.records {
		models = append(models, types.ModelMemoryInfo{
			ID:            rec.id,
			SizeBytes:     rec.sizeBytes,
			OriginalBytes: rec.originalBytes,
			AllocatedAt:   rec.allocatedAt.Unix(),
			LastAccessed:  rec.lastAccessed.Unix(),
			AccessCount:   rec.accessCount,
			Compressed:    rec.compressed,
			Swapped:       rec.swapped,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })

	hits, misses := m.pool.counters()
	return types.MemoryStats{
		UsedBytes:         m.usedBytes,
		MaxBytes:          m.maxBytes,
		PeakBytes:         m.peakBytes,
		Models:            models,
		CompressionsTotal: m.compressionsTotal,
		SwapsTotal:        m.swapsTotal,
		RestoresTotal:     m.restoresTotal,
		OptimizePasses:    m.optimizePasses,
		PoolSize:          m.pool.size,
		PoolAvailable:     m.pool.available(),
		PoolHits:          hits,
		PoolMisses:        misses,
	}
}
