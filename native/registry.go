package native

import (
	"fmt"
	"sync"
)

var (
	mu      sync.Mutex
	current Library
	factory func() (Library, error)
)

// Register installs the factory Default uses to create the process-wide
// library on first use. The last registration wins.
func Register(f func() (Library, error)) {
	mu.Lock()
	defer mu.Unlock()
	factory = f
}

// Default returns the process-wide library, creating it on first use.
// It panics if no library is registered or the library cannot start,
// the same way a missing shared object fails a cgo binary at load time.
func Default() Library {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return current
	}
	if factory == nil {
		panic("cvbridge/native: no native library registered")
	}
	lib, err := factory()
	if err != nil {
		panic(fmt.Sprintf("cvbridge/native: native library unavailable: %v", err))
	}
	current = lib
	return current
}

// SetDefault replaces the process-wide library. Wrappers created earlier keep
// the library they were created with.
func SetDefault(lib Library) {
	mu.Lock()
	defer mu.Unlock()
	current = lib
}

// Swap sets lib as the default and returns a function restoring the previous one.
func Swap(lib Library) (restore func()) {
	mu.Lock()
	prev := current
	current = lib
	mu.Unlock()

	return func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	}
}
