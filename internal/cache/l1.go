package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// memoryTier is the in-process LRU front. It is bounded by both an entry
// count and an aggregate payload-byte ceiling; whichever overflows first
// triggers synchronous eviction from the cold end.
type memoryTier struct {
	mu         sync.Mutex
	maxEntries int
	maxBytes   int64
	ll         *list.List               // front is most recently used
	items      map[string]*list.Element // key to element holding *Entry
	sizeBytes  int64
	evictions  uint64
}

func newMemoryTier(maxEntries int, maxBytes int64) *memoryTier {
	return &memoryTier{
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
	}
}

func (t *memoryTier) Get(_ context.Context, key string) (*Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	el, ok := t.items[key]
	if !ok {
		return nil, nil
	}
	ent := el.Value.(*Entry)
	ent.LastAccessedAt = time.Now()
	ent.AccessCount++
	t.ll.MoveToFront(el)
	return ent.clone(), nil
}

func (t *memoryTier) Set(_ context.Context, e *Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := e.clone()
	if el, ok := t.items[e.Key]; ok {
		old := el.Value.(*Entry)
		t.sizeBytes += int64(len(stored.Payload)) - int64(len(old.Payload))
		el.Value = stored
		t.ll.MoveToFront(el)
	} else {
		t.items[e.Key] = t.ll.PushFront(stored)
		t.sizeBytes += int64(len(stored.Payload))
	}
	t.evictOverflow()
	return nil
}

// evictOverflow drops least-recently-used entries until both ceilings hold
// again. The entry at the front always survives, so a single oversized value
// can still be cached alone.
func (t *memoryTier) evictOverflow() {
	for t.ll.Len() > 1 && (t.ll.Len() > t.maxEntries || t.sizeBytes > t.maxBytes) {
		t.removeElement(t.ll.Back())
		t.evictions++
	}
}

func (t *memoryTier) removeElement(el *list.Element) {
	ent := el.Value.(*Entry)
	t.ll.Remove(el)
	delete(t.items, ent.Key)
	t.sizeBytes -= int64(len(ent.Payload))
}

func (t *memoryTier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if el, ok := t.items[key]; ok {
		t.removeElement(el)
	}
	return nil
}

func (t *memoryTier) Len(_ context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ll.Len(), nil
}

func (t *memoryTier) SizeBytes(_ context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sizeBytes, nil
}

func (t *memoryTier) Clear(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ll.Init()
	t.items = make(map[string]*list.Element)
	t.sizeBytes = 0
	return nil
}

func (t *memoryTier) Close() error { return nil }

func (t *memoryTier) evicted() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evictions
}
