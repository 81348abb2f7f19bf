package engine

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// CPU feature codes, OpenCV numbering.
const (
	cpuMMX     int32 = 1
	cpuSSE     int32 = 2
	cpuSSE2    int32 = 3
	cpuSSE3    int32 = 4
	cpuSSSE3   int32 = 5
	cpuSSE41   int32 = 6
	cpuSSE42   int32 = 7
	cpuPOPCNT  int32 = 8
	cpuFP16    int32 = 9
	cpuAVX     int32 = 10
	cpuAVX2    int32 = 11
	cpuFMA3    int32 = 12
	cpuAVX512F int32 = 13
	cpuNEON    int32 = 100
)

// HardwareSupport reports whether the host CPU has feature.
// Unknown codes report false.
func (e *Engine) HardwareSupport(feature int32) bool {
	amd64 := runtime.GOARCH == "amd64"
	switch feature {
	case cpuMMX, cpuSSE, cpuSSE2:
		// baseline on amd64
		return amd64 || cpu.X86.HasSSE2
	case cpuSSE3:
		return cpu.X86.HasSSE3
	case cpuSSSE3:
		return cpu.X86.HasSSSE3
	case cpuSSE41:
		return cpu.X86.HasSSE41
	case cpuSSE42:
		return cpu.X86.HasSSE42
	case cpuPOPCNT:
		return cpu.X86.HasPOPCNT
	case cpuFP16:
		// F16C ships with every FMA-capable x86 part
		return cpu.X86.HasFMA || cpu.ARM64.HasFPHP
	case cpuAVX:
		return cpu.X86.HasAVX
	case cpuAVX2:
		return cpu.X86.HasAVX2
	case cpuFMA3:
		return cpu.X86.HasFMA
	case cpuAVX512F:
		return cpu.X86.HasAVX512F
	case cpuNEON:
		return runtime.GOARCH == "arm64" || cpu.ARM64.HasASIMD || cpu.ARM.HasNEON
	default:
		return false
	}
}
