//go:build linux || darwin

package system

import "testing"

func TestReadMemInfo(t *testing.T) {
	info, err := ReadMemInfo()
	if err != nil {
		t.Fatalf("ReadMemInfo: %v", err)
	}
	if info.TotalBytes <= 0 {
		t.Fatalf("expected positive total, got %d", info.TotalBytes)
	}
	if info.AvailableBytes < 0 {
		t.Fatalf("expected non-negative available, got %d", info.AvailableBytes)
	}
	if info.AvailableBytes > info.TotalBytes {
		t.Fatalf("available %d exceeds total %d", info.AvailableBytes, info.TotalBytes)
	}
}

func TestTotalRAM(t *testing.T) {
	total, err := TotalRAM()
	if err != nil {
		t.Fatalf("TotalRAM: %v", err)
	}
	if total <= 0 {
		t.Fatalf("expected positive total, got %d", total)
	}
}
