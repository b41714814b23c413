//go:build !linux && !darwin

package system

import (
	"fmt"
	"runtime"
)

func readMemInfo() (MemInfo, error) {
	return MemInfo{}, fmt.Errorf("memory detection not supported on %s", runtime.GOOS)
}
