package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

// Records whose access count falls below this fraction of the candidate mean
// are swapped out instead of compressed in place.
const swapAccessFactor = 0.25

// OptimizeResult summarizes one reclamation pass.
type OptimizeResult struct {
	Compressed int
	Swapped    int
	FreedBytes int64
}

// Optimize runs one reclamation pass: while the tracked total exceeds the GC
// threshold, the least valuable resident payloads are compressed or swapped,
// coldest first. Records touched after the pass sampled them are skipped.
func (m *Manager) Optimize() OptimizeResult {
	return m.runOptimize(int64(m.gcThreshold * float64(m.maxBytes)))
}

// Run executes the optimization pass periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			res := m.Optimize()
			if res.Compressed > 0 || res.Swapped > 0 {
				freed := res.FreedBytes
				if freed < 0 {
					freed = 0
				}
				m.log.Info().Int("compressed", res.Compressed).Int("swapped", res.Swapped).
					Str("freed", humanize.IBytes(uint64(freed))).Msg("memory layout optimized")
			}
		}
	}
}

func (m *Manager) runOptimize(target int64) OptimizeResult {
	m.reshapeMu.Lock()
	defer m.reshapeMu.Unlock()
	return m.reclaim(target, "")
}

type reclaimCandidate struct {
	id         string
	gen        uint64
	score      float64
	access     uint64
	compressed bool
}

// reclaim reshapes the lowest-scored records until the tracked total drops
// to target or candidates run out. Requires reshapeMu. The exclude id is
// left alone so an in-flight restore or decompression never reshapes its own
// record.
func (m *Manager) reclaim(target int64, exclude string) OptimizeResult {
	var res OptimizeResult

	m.mu.Lock()
	m.optimizePasses++
	if m.usedBytes <= target {
		m.mu.Unlock()
		return res
	}
	now := time.Now()
	cands := make([]reclaimCandidate, 0, len(m.records))
	var totalAccess uint64
	for _, rec := range m.records {
		if rec.swapped || rec.external || rec.id == exclude {
			continue
		}
		totalAccess += rec.accessCount
		cands = append(cands, reclaimCandidate{
			id:         rec.id,
			gen:        rec.gen,
			score:      rec.score(now),
			access:     rec.accessCount,
			compressed: rec.compressed,
		})
	}
	m.mu.Unlock()

	if len(cands) == 0 {
		return res
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score < cands[j].score })
	mean := float64(totalAccess) / float64(len(cands))

	for _, c := range cands {
		m.mu.RLock()
		used := m.usedBytes
		m.mu.RUnlock()
		if used <= target {
			break
		}
		// cold records go to disk; warmer ones are compressed in place
		if c.compressed || float64(c.access) < swapAccessFactor*mean {
			applied, freed, err := m.swapRecord(c.id, c.gen)
			if err != nil {
				m.log.Warn().Err(err).Str("model", c.id).Msg("swap failed during reclaim")
				continue
			}
			if applied {
				res.Swapped++
				res.FreedBytes += freed
			}
			continue
		}
		applied, freed, err := m.compressRecord(c.id, c.gen)
		if err != nil {
			m.log.Warn().Err(err).Str("model", c.id).Msg("compression failed during reclaim")
			continue
		}
		if applied {
			res.Compressed++
			res.FreedBytes += freed
		}
	}
	return res
}
