package system

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func readMemInfo() (MemInfo, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return MemInfo{}, fmt.Errorf("open /proc/meminfo: %w", err)
	}
	defer f.Close()

	var totalKB, availKB int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch strings.TrimSuffix(fields[0], ":") {
		case "MemTotal":
			totalKB = v
		case "MemAvailable":
			availKB = v
		}
	}
	if err := sc.Err(); err != nil {
		return MemInfo{}, fmt.Errorf("read /proc/meminfo: %w", err)
	}
	if totalKB == 0 {
		return MemInfo{}, fmt.Errorf("MemTotal missing from /proc/meminfo")
	}
	return MemInfo{TotalBytes: totalKB * 1024, AvailableBytes: availKB * 1024}, nil
}
