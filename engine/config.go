package engine

import "io"

// Config holds configuration for engine creation.
// The zero value is usable.
type Config struct {
	// MemoryLimitPages caps host memory in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// DeviceMemoryLimitPages caps device memory used by GpuMat and GpuCascade.
	// 0 means the same limit as host memory.
	DeviceMemoryLimitPages uint32

	// WindowOutput receives rendered windows. nil discards them.
	WindowOutput io.Writer

	// KeyInput supplies key presses to WaitKey. nil means no keyboard:
	// WaitKey sleeps for its delay and reports no key.
	KeyInput io.Reader
}

func (c *Config) windowOutput() io.Writer {
	if c.WindowOutput == nil {
		return io.Discard
	}
	return c.WindowOutput
}
