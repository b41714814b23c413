package cache

import (
	"context"

	"runnerd/pkg/types"
)

// Stats assembles a point-in-time snapshot across all tiers. Tier size
// queries that fail are logged and reported as zero rather than failing the
// snapshot.
func (m *Manager) Stats(ctx context.Context) types.CacheStats {
	m.mu.Lock()
	st := types.CacheStats{
		Hits:       m.lookupHits,
		Misses:     m.lookupMisses,
		Sets:       m.sets,
		Deletes:    m.deletes,
		Promotions: m.promotions,
	}
	perTier := make(map[Level]tierCounters, len(m.counters))
	for l, c := range m.counters {
		perTier[l] = *c
	}
	m.mu.Unlock()

	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}

	for _, t := range m.tiers {
		c := perTier[t.level]
		ts := types.CacheTierStats{
			Level:       t.level.String(),
			Hits:        c.hits,
			Misses:      c.misses,
			Expirations: c.expirations,
		}
		if t.level == L1 {
			ts.Evictions = m.l1.evicted()
		}
		n, err := t.tier.Len(ctx)
		if err != nil {
			m.log.Warn().Err(err).Str("tier", t.level.String()).Msg("tier length unavailable")
		}
		ts.Entries = n
		size, err := t.tier.SizeBytes(ctx)
		if err != nil {
			m.log.Warn().Err(err).Str("tier", t.level.String()).Msg("tier size unavailable")
		}
		ts.SizeBytes = size
		st.Tiers = append(st.Tiers, ts)
	}
	return st
}
