package system

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func readMemInfo() (MemInfo, error) {
	out, err := exec.Command("sysctl", "-n", "hw.memsize").Output()
	if err != nil {
		return MemInfo{}, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	total, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return MemInfo{}, fmt.Errorf("parse hw.memsize: %w", err)
	}
	// Darwin has no cheap equivalent of MemAvailable; report the total only.
	return MemInfo{TotalBytes: total}, nil
}
