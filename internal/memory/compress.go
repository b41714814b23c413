package memory

import "fmt"

// Compress replaces the resident payload for id with its compressed form and
// updates the tracked total. Idempotent: compressing an already-compressed
// record changes nothing. Swapped and accounting-only records have no
// payload to compress and fail with a not-resident error.
func (m *Manager) Compress(id string) error {
	m.reshapeMu.Lock()
	defer m.reshapeMu.Unlock()
	_, _, err := m.compressRecord(id, 0)
	return err
}

// Decompress restores the original payload for id, reclaiming budget first
// if the expansion would exceed the ceiling. Idempotent.
func (m *Manager) Decompress(id string) error {
	m.reshapeMu.Lock()
	defer m.reshapeMu.Unlock()

	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok {
		m.mu.Unlock()
		return ErrModelNotFound(id)
	}
	if !rec.compressed {
		m.mu.Unlock()
		return nil
	}
	if rec.swapped || rec.data == nil {
		m.mu.Unlock()
		return ErrNotResident(id)
	}
	data := rec.data
	oldSize := rec.sizeBytes
	m.mu.Unlock()

	raw, err := m.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", id, err)
	}

	grow := int64(len(raw)) - oldSize
	m.mu.Lock()
	over := m.usedBytes+grow > m.maxBytes
	m.mu.Unlock()
	if over {
		m.reclaim(m.maxBytes-grow, id)
		m.mu.Lock()
		over = m.usedBytes+grow > m.maxBytes
		m.mu.Unlock()
		if over {
			return ErrOutOfBudget(id, int64(len(raw)), m.maxBytes)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.usedBytes += int64(len(raw)) - oldSize
	rec.data = raw
	rec.sizeBytes = int64(len(raw))
	rec.compressed = false
	if m.usedBytes > m.peakBytes {
		m.peakBytes = m.usedBytes
	}
	m.log.Debug().Str("model", id).Int64("bytes", rec.sizeBytes).Msg("decompressed")
	return nil
}

// compressRecord does the work of Compress. Requires reshapeMu. When
// requireGen is non-zero the compression is skipped (false, no error) if the
// record's access bookkeeping moved since the caller sampled it.
func (m *Manager) compressRecord(id string, requireGen uint64) (bool, int64, error) {
	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok {
		m.mu.Unlock()
		return false, 0, ErrModelNotFound(id)
	}
	if requireGen != 0 && rec.gen != requireGen {
		m.mu.Unlock()
		return false, 0, nil
	}
	if rec.compressed {
		m.mu.Unlock()
		return false, 0, nil
	}
	if rec.swapped || rec.data == nil {
		m.mu.Unlock()
		return false, 0, ErrNotResident(id)
	}
	data := rec.data
	m.mu.Unlock()

	comp, err := m.compressor.Compress(data)
	if err != nil {
		return false, 0, fmt.Errorf("compress %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if requireGen != 0 && rec.gen != requireGen {
		// touched while compressing; leave it alone
		return false, 0, nil
	}
	old := rec.sizeBytes
	rec.data = comp
	rec.sizeBytes = int64(len(comp))
	rec.compressed = true
	m.usedBytes += rec.sizeBytes - old
	m.compressionsTotal++
	m.log.Debug().Str("model", id).Str("codec", m.compressor.Name()).
		Int64("from", old).Int64("to", rec.sizeBytes).Msg("compressed")
	return true, old - rec.sizeBytes, nil
}
