package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestEntry(key, payload string) *Entry {
	now := time.Now()
	return &Entry{Key: key, Payload: []byte(payload), Codec: "json", CreatedAt: now, LastAccessedAt: now}
}

func TestMemoryTierRoundTrip(t *testing.T) {
	tier := newMemoryTier(4, 1<<20)
	ctx := context.Background()
	if err := tier.Set(ctx, newTestEntry("k", `"v"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := tier.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || string(got.Payload) != `"v"` {
		t.Fatalf("unexpected entry: %+v", got)
	}
	missing, err := tier.Get(ctx, "absent")
	if err != nil || missing != nil {
		t.Fatalf("expected clean miss, got %+v err %v", missing, err)
	}
}

func TestMemoryTierEvictsLeastRecentlyUsed(t *testing.T) {
	tier := newMemoryTier(3, 1<<20)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := tier.Set(ctx, newTestEntry(fmt.Sprintf("k%d", i), "x")); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	// touch k0 so k1 becomes the coldest
	if _, err := tier.Get(ctx, "k0"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k3", "x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := tier.Get(ctx, "k1"); got != nil {
		t.Fatalf("expected k1 evicted")
	}
	for _, k := range []string{"k0", "k2", "k3"} {
		if got, _ := tier.Get(ctx, k); got == nil {
			t.Fatalf("%s should have survived", k)
		}
	}
	if tier.evicted() != 1 {
		t.Fatalf("expected 1 eviction, got %d", tier.evicted())
	}
}

func TestMemoryTierEvictsOnByteCeiling(t *testing.T) {
	tier := newMemoryTier(100, 10)
	ctx := context.Background()
	if err := tier.Set(ctx, newTestEntry("a", "12345")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("b", "12345")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("c", "1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := tier.Get(ctx, "a"); got != nil {
		t.Fatalf("expected a evicted by the byte ceiling")
	}
	size, _ := tier.SizeBytes(ctx)
	if size != 6 {
		t.Fatalf("expected 6 tracked bytes, got %d", size)
	}
}

func TestMemoryTierKeepsOversizedNewest(t *testing.T) {
	tier := newMemoryTier(10, 8)
	ctx := context.Background()
	if err := tier.Set(ctx, newTestEntry("small", "1234")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("big", "123456789012")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := tier.Get(ctx, "small"); got != nil {
		t.Fatalf("expected small evicted")
	}
	if got, _ := tier.Get(ctx, "big"); got == nil {
		t.Fatalf("oversized newest entry must survive alone")
	}
	if n, _ := tier.Len(ctx); n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}
}

func TestMemoryTierUpdateReplacesInPlace(t *testing.T) {
	tier := newMemoryTier(4, 1<<20)
	ctx := context.Background()
	if err := tier.Set(ctx, newTestEntry("k", "old")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k", "newer")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if n, _ := tier.Len(ctx); n != 1 {
		t.Fatalf("update grew the tier: %d entries", n)
	}
	got, _ := tier.Get(ctx, "k")
	if string(got.Payload) != "newer" {
		t.Fatalf("unexpected payload %q", got.Payload)
	}
	size, _ := tier.SizeBytes(ctx)
	if size != 5 {
		t.Fatalf("byte accounting wrong after update: %d", size)
	}
}

func TestMemoryTierReturnsCopies(t *testing.T) {
	tier := newMemoryTier(4, 1<<20)
	ctx := context.Background()
	if err := tier.Set(ctx, newTestEntry("k", "abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := tier.Get(ctx, "k")
	got.Payload[0] = 'X'
	again, _ := tier.Get(ctx, "k")
	if string(again.Payload) != "abc" {
		t.Fatalf("stored payload mutated through a returned copy")
	}
}

func TestMemoryTierDeleteAndClear(t *testing.T) {
	tier := newMemoryTier(4, 1<<20)
	ctx := context.Background()
	if err := tier.Delete(ctx, "absent"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k1", "abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k2", "def")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := tier.Get(ctx, "k1"); got != nil {
		t.Fatalf("k1 still present after delete")
	}
	if size, _ := tier.SizeBytes(ctx); size != 3 {
		t.Fatalf("byte accounting wrong after delete: %d", size)
	}
	if err := tier.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := tier.Len(ctx); n != 0 {
		t.Fatalf("expected empty tier, got %d entries", n)
	}
	if size, _ := tier.SizeBytes(ctx); size != 0 {
		t.Fatalf("expected zero bytes, got %d", size)
	}
}
