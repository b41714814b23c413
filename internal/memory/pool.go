package memory

import "sync"

// Buffer is a reusable byte buffer acquired from the pool. Data is sliced to
// the requested length; contents are not zeroed between uses.
type Buffer struct {
	Data   []byte
	raw    []byte
	pooled bool
}

// bufferPool is a fixed free list of preallocated slots. Requests that do
// not fit a slot, or arrive while the list is empty, are served by a fresh
// allocation outside the pool; acquisition never blocks.
type bufferPool struct {
	mu        sync.Mutex
	slotBytes int
	size      int
	free      [][]byte
	hits      uint64
	misses    uint64
}

func newBufferPool(size, slotBytes int) *bufferPool {
	p := &bufferPool{
		slotBytes: slotBytes,
		size:      size,
		free:      make([][]byte, 0, size),
	}
	for i := 0; i < size; i++ {
		p.free = append(p.free, make([]byte, slotBytes))
	}
	return p
}

func (p *bufferPool) get(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	p.mu.Lock()
	if n <= p.slotBytes && len(p.free) > 0 {
		raw := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		p.hits++
		p.mu.Unlock()
		return &Buffer{Data: raw[:n], raw: raw, pooled: true}
	}
	p.misses++
	p.mu.Unlock()
	return &Buffer{Data: make([]byte, n)}
}

func (p *bufferPool) put(b *Buffer) {
	if b == nil || !b.pooled {
		return
	}
	// guard against double return
	b.pooled = false
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= p.size {
		return
	}
	p.free = append(p.free, b.raw[:p.slotBytes])
}

func (p *bufferPool) available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

func (p *bufferPool) counters() (hits, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

// GetBuffer acquires a buffer of n bytes, from the pool when a slot fits.
// Ownership transfers to the caller until PutBuffer.
func (m *Manager) GetBuffer(n int) *Buffer {
	return m.pool.get(n)
}

// PutBuffer returns a buffer to the pool. Buffers allocated outside the pool
// are accepted and discarded; the pool never grows past its configured size.
func (m *Manager) PutBuffer(b *Buffer) {
	m.pool.put(b)
}

// AvailableBuffers reports how many pool slots are currently free.
func (m *Manager) AvailableBuffers() int {
	return m.pool.available()
}
