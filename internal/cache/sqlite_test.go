package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T) *sqliteTier {
	t.Helper()
	tier, err := openSQLiteTier(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open tier: %v", err)
	}
	t.Cleanup(func() { tier.Close() })
	return tier
}

func TestSQLiteTierRoundTrip(t *testing.T) {
	tier := openTestSQLite(t)
	ctx := context.Background()
	now := time.Now()
	ent := &Entry{
		Key:            "k",
		Payload:        []byte(`{"a":1}`),
		Codec:          "json",
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Hour),
		LastAccessedAt: now,
		AccessCount:    2,
	}
	if err := tier.Set(ctx, ent); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := tier.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected a hit")
	}
	if string(got.Payload) != `{"a":1}` || got.Codec != "json" || got.AccessCount != 2 {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !got.CreatedAt.Equal(ent.CreatedAt) || !got.ExpiresAt.Equal(ent.ExpiresAt) {
		t.Fatalf("timestamps did not round-trip")
	}

	missing, err := tier.Get(ctx, "absent")
	if err != nil || missing != nil {
		t.Fatalf("expected clean miss, got %+v err %v", missing, err)
	}
}

func TestSQLiteTierZeroExpiryMeansNever(t *testing.T) {
	tier := openTestSQLite(t)
	ctx := context.Background()
	ent := newTestEntry("k", "v")
	if err := tier.Set(ctx, ent); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := tier.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.ExpiresAt.IsZero() {
		t.Fatalf("zero expiry came back as %v", got.ExpiresAt)
	}
	if got.expired(time.Now().Add(24 * time.Hour)) {
		t.Fatalf("entry without expiry must never expire")
	}
}

func TestSQLiteTierUpsertOverwrites(t *testing.T) {
	tier := openTestSQLite(t)
	ctx := context.Background()
	if err := tier.Set(ctx, newTestEntry("k", "old")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k", "newer")); err != nil {
		t.Fatalf("second set: %v", err)
	}
	got, err := tier.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Payload) != "newer" {
		t.Fatalf("unexpected payload %q", got.Payload)
	}
	if n, _ := tier.Len(ctx); n != 1 {
		t.Fatalf("upsert grew the table: %d rows", n)
	}
}

func TestSQLiteTierPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	tier, err := openSQLiteTier(path)
	if err != nil {
		t.Fatalf("open tier: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k", "durable")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := openSQLiteTier(path)
	if err != nil {
		t.Fatalf("reopen tier: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got == nil || string(got.Payload) != "durable" {
		t.Fatalf("entry lost across reopen: %+v", got)
	}
}

func TestSQLiteTierDeleteClearAndSizes(t *testing.T) {
	tier := openTestSQLite(t)
	ctx := context.Background()
	if err := tier.Delete(ctx, "absent"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k1", "abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := tier.Set(ctx, newTestEntry("k2", "defgh")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if n, _ := tier.Len(ctx); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
	if size, _ := tier.SizeBytes(ctx); size != 8 {
		t.Fatalf("expected 8 payload bytes, got %d", size)
	}
	if err := tier.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if size, _ := tier.SizeBytes(ctx); size != 5 {
		t.Fatalf("expected 5 payload bytes after delete, got %d", size)
	}
	if err := tier.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := tier.Len(ctx); n != 0 {
		t.Fatalf("expected empty table, got %d rows", n)
	}
}
