package memory

import "fmt"

// SwapToDisk persists the payload for id (compressed or raw, as it stands)
// to the swap store and drops it from memory. The tracked total decreases by
// the released bytes. Idempotent: swapping a swapped record changes nothing.
func (m *Manager) SwapToDisk(id string) error {
	m.reshapeMu.Lock()
	defer m.reshapeMu.Unlock()
	_, _, err := m.swapRecord(id, 0)
	return err
}

// Restore reads the payload for id back from the swap store and marks it
// resident again, reclaiming budget first if needed. The payload keeps the
// compression state it was swapped with. Idempotent for resident records.
func (m *Manager) Restore(id string) error {
	m.reshapeMu.Lock()
	defer m.reshapeMu.Unlock()

	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok {
		m.mu.Unlock()
		return ErrModelNotFound(id)
	}
	if !rec.swapped {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	data, err := m.swap.Read(id)
	if err != nil {
		return fmt.Errorf("restore %s: %w", id, err)
	}
	size := int64(len(data))

	m.mu.Lock()
	over := m.usedBytes+size > m.maxBytes
	m.mu.Unlock()
	if over {
		m.reclaim(m.maxBytes-size, id)
		m.mu.Lock()
		over = m.usedBytes+size > m.maxBytes
		m.mu.Unlock()
		if over {
			return ErrOutOfBudget(id, size, m.maxBytes)
		}
	}

	m.mu.Lock()
	rec.data = data
	rec.sizeBytes = size
	rec.swapped = false
	m.usedBytes += size
	if m.usedBytes > m.peakBytes {
		m.peakBytes = m.usedBytes
	}
	m.restoresTotal++
	m.mu.Unlock()

	if err := m.swap.Remove(id); err != nil {
		m.log.Warn().Err(err).Str("model", id).Msg("stale swap entry not removed")
	}
	m.log.Debug().Str("model", id).Int64("bytes", size).Msg("restored from swap")
	return nil
}

// swapRecord does the work of SwapToDisk. Requires reshapeMu. When
// requireGen is non-zero the swap is skipped (false, no error) if the
// record's access bookkeeping moved since the caller sampled it.
func (m *Manager) swapRecord(id string, requireGen uint64) (bool, int64, error) {
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
	if rec.swapped {
		m.mu.Unlock()
		return false, 0, nil
	}
	if rec.data == nil {
		m.mu.Unlock()
		return false, 0, ErrNotResident(id)
	}
	data := rec.data
	m.mu.Unlock()

	if err := m.swap.Write(id, data); err != nil {
		return false, 0, fmt.Errorf("swap %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if requireGen != 0 && rec.gen != requireGen {
		// touched while writing; the entry on disk is simply unused
		return false, 0, nil
	}
	rec.data = nil
	rec.swapped = true
	m.usedBytes -= rec.sizeBytes
	m.swapsTotal++
	m.log.Debug().Str("model", id).Int64("bytes", rec.sizeBytes).Msg("swapped to disk")
	return true, rec.sizeBytes, nil
}
