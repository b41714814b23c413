// Package system exposes host-level facts the daemon needs at startup,
// currently physical memory totals used to derive the model memory budget.
package system

// MemInfo describes physical memory on the host.
type MemInfo struct {
	TotalBytes     int64
	AvailableBytes int64
}

// ReadMemInfo returns the host memory totals. AvailableBytes may be zero on
// platforms that only report the total.
func ReadMemInfo() (MemInfo, error) {
	return readMemInfo()
}

// TotalRAM returns the total physical memory in bytes.
func TotalRAM() (int64, error) {
	info, err := ReadMemInfo()
	if err != nil {
		return 0, err
	}
	return info.TotalBytes, nil
}
