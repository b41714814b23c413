package memory

import (
	"context"
	"testing"
	"time"
)

func TestOptimizeBelowThresholdIsNoop(t *testing.T) {
	m := newTestManager(t, 1000)
	if err := m.Allocate("m1", make([]byte, 400)); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	res := m.Optimize()
	if res.Compressed != 0 || res.Swapped != 0 || res.FreedBytes != 0 {
		t.Fatalf("expected no work below threshold, got %+v", res)
	}
	rec, _ := m.Get("m1")
	if rec.Compressed || rec.Swapped {
		t.Fatalf("record reshaped below threshold: %+v", rec)
	}
	if st := m.Stats(); st.OptimizePasses != 1 {
		t.Fatalf("expected pass to be counted, got %d", st.OptimizePasses)
	}
}

func TestOptimizeSwapsColdBeforeHot(t *testing.T) {
	m := newTestManager(t, 1000)
	if err := m.Allocate("hot", make([]byte, 400)); err != nil {
		t.Fatalf("allocate hot: %v", err)
	}
	if err := m.Allocate("cold", make([]byte, 400)); err != nil {
		t.Fatalf("allocate cold: %v", err)
	}
	for i := 0; i < 10; i++ {
		m.Touch("hot")
	}

	res := m.Optimize()
	if res.Swapped != 1 {
		t.Fatalf("expected one swap, got %+v", res)
	}
	cold, _ := m.Get("cold")
	if !cold.Swapped {
		t.Fatalf("expected cold record on disk")
	}
	hot, _ := m.Get("hot")
	if hot.Swapped || hot.Compressed {
		t.Fatalf("hot record should be left alone: %+v", hot)
	}
	if m.usedBytes > 750 {
		t.Fatalf("still above threshold: %d", m.usedBytes)
	}
}

func TestOptimizeCompressesWarmRecords(t *testing.T) {
	m := newTestManager(t, 1000)
	if err := m.Allocate("a", repeatedPayload(600)); err != nil {
		t.Fatalf("allocate a: %v", err)
	}
	if err := m.Allocate("b", repeatedPayload(300)); err != nil {
		t.Fatalf("allocate b: %v", err)
	}
	for i := 0; i < 3; i++ {
		m.Touch("a")
		m.Touch("b")
	}

	res := m.Optimize()
	if res.Swapped != 0 {
		t.Fatalf("warm records must not be swapped: %+v", res)
	}
	if res.Compressed == 0 {
		t.Fatalf("expected at least one compression, got %+v", res)
	}
	if m.usedBytes > 750 {
		t.Fatalf("still above threshold: %d", m.usedBytes)
	}
	a, _ := m.Get("a")
	b, _ := m.Get("b")
	if a.Swapped || b.Swapped {
		t.Fatalf("no record should be on disk: a=%+v b=%+v", a, b)
	}
}

func TestRunReshapesInBackground(t *testing.T) {
	m := New(Config{
		MaxBytes:         1000,
		SwapDir:          t.TempDir(),
		OptimizeInterval: 10 * time.Millisecond,
	})
	if err := m.Allocate("m1", repeatedPayload(900)); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		st := m.Stats()
		if st.CompressionsTotal+st.SwapsTotal > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("background pass never reshaped anything: %+v", st)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
