package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Manager owns the model memory registry, the buffer pool, and the budget
// enforcement that keeps tracked bytes under the configured ceiling.
type Manager struct {
	mu        sync.RWMutex
	records   map[string]*record
	usedBytes int64
	peakBytes int64

	maxBytes    int64
	gcThreshold float64
	interval    time.Duration

	// reshapeMu serializes payload transitions (compress, swap, restore,
	// release) so at most one reshape touches payloads at a time. Lock
	// order is always reshapeMu before mu.
	reshapeMu sync.Mutex

	pool       *bufferPool
	compressor Compressor
	swap       SwapStore
	log        zerolog.Logger

	// counters, guarded by mu
	compressionsTotal uint64
	swapsTotal        uint64
	restoresTotal     uint64
	optimizePasses    uint64

	startTime time.Time
}

// Allocate registers a resident model payload under id. The manager takes
// ownership of data; callers must not modify it afterwards. When the new
// total would exceed the ceiling, a reclamation pass runs first and the
// allocation fails with an OutOfBudget error only if it still does not fit.
func (m *Manager) Allocate(id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("empty model id")
	}
	return m.allocate(id, data, int64(len(data)), false)
}

// AllocateSize registers an accounting-only record for a payload owned by an
// external loader. Such records participate in budget accounting and ranking
// but cannot be compressed or swapped here.
func (m *Manager) AllocateSize(id string, sizeBytes int64) error {
	if id == "" {
		return fmt.Errorf("empty model id")
	}
	if sizeBytes < 0 {
		return fmt.Errorf("negative size for %s", id)
	}
	return m.allocate(id, nil, sizeBytes, true)
}

func (m *Manager) allocate(id string, data []byte, size int64, external bool) error {
	m.mu.Lock()
	if _, ok := m.records[id]; ok {
		m.mu.Unlock()
		return ErrModelExists(id)
	}
	if m.usedBytes+size <= m.maxBytes {
		m.insert(id, data, size, external)
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	// Over the ceiling: reclaim far enough to fit the new payload, capped
	// at the usual GC target so a small allocation still triggers a full
	// pressure-relief pass.
	target := int64(m.gcThreshold * float64(m.maxBytes))
	if room := m.maxBytes - size; room < target {
		target = room
	}
	m.runOptimize(target)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; ok {
		return ErrModelExists(id)
	}
	if m.usedBytes+size > m.maxBytes {
		return ErrOutOfBudget(id, size, m.maxBytes)
	}
	m.insert(id, data, size, external)
	return nil
}

// insert must be called with mu held.
func (m *Manager) insert(id string, data []byte, size int64, external bool) {
	now := time.Now()
	m.records[id] = &record{
		id:            id,
		data:          data,
		sizeBytes:     size,
		originalBytes: size,
		allocatedAt:   now,
		lastAccessed:  now,
		external:      external,
		// gen starts at 1; zero is the no-check sentinel for reshape internals
		gen: 1,
	}
	m.usedBytes += size
	if m.usedBytes > m.peakBytes {
		m.peakBytes = m.usedBytes
	}
	m.log.Debug().Str("model", id).Int64("bytes", size).Msg("allocated")
}

// Touch records an access for id: O(1) bump of the access count and
// timestamp. Unknown ids are ignored.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return
	}
	rec.accessCount++
	rec.lastAccessed = time.Now()
	rec.gen++
}

// Get returns a snapshot of the record for id.
func (m *Manager) Get(id string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.snapshot(), true
}

// Bytes returns the resident payload for id. The returned slice is shared
// with the manager and must be treated as read-only.
func (m *Manager) Bytes(id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrModelNotFound(id)
	}
	if rec.data == nil {
		return nil, ErrNotResident(id)
	}
	return rec.data, nil
}

// Release destroys the record for id, reduces the tracked total, and removes
// any swap-store entry left behind.
func (m *Manager) Release(id string) error {
	m.reshapeMu.Lock()
	defer m.reshapeMu.Unlock()

	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok {
		m.mu.Unlock()
		return ErrModelNotFound(id)
	}
	delete(m.records, id)
	if !rec.swapped {
		m.usedBytes -= rec.sizeBytes
	}
	wasSwapped := rec.swapped
	m.mu.Unlock()

	if wasSwapped {
		if err := m.swap.Remove(id); err != nil {
			return fmt.Errorf("remove swap entry %s: %w", id, err)
		}
	}
	m.log.Debug().Str("model", id).Msg("released")
	return nil
}
