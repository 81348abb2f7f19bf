package cvbridge

// Memory represents the native library's linear memory.
//
// Read returns a view into that memory, not a copy. The view is invalidated
// when the memory grows or the block it covers is freed, so data that must
// outlive the call is copied by the caller.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// MemorySizer provides the current size of native linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates memory owned by the native library.
// Pointers it returns are only valid in the Memory it belongs to.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
