package heap

import (
	"bytes"
	"fmt"
)

// Read returns a view of length bytes at offset. The view aliases linear
// memory: it changes when the memory is written and is invalid after Grow.
func (h *Heap) Read(offset uint32, length uint32) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, ok := h.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("%s: memory read out of bounds: offset=%d, length=%d", h.name, offset, length)
	}
	return data, nil
}

// Copy returns a copy of length bytes at offset.
func (h *Heap) Copy(offset uint32, length uint32) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, ok := h.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("%s: memory read out of bounds: offset=%d, length=%d", h.name, offset, length)
	}
	return bytes.Clone(data), nil
}

// Write writes bytes to memory.
func (h *Heap) Write(offset uint32, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.mem.Write(offset, data) {
		return fmt.Errorf("%s: memory write out of bounds: offset=%d, length=%d", h.name, offset, len(data))
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit value.
func (h *Heap) ReadU8(offset uint32) (uint8, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.mem.ReadByte(offset)
	if !ok {
		return 0, fmt.Errorf("%s: memory read out of bounds: offset=%d", h.name, offset)
	}
	return v, nil
}

// ReadU16 reads an unsigned 16-bit little-endian value.
func (h *Heap) ReadU16(offset uint32) (uint16, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.mem.ReadUint16Le(offset)
	if !ok {
		return 0, fmt.Errorf("%s: memory read out of bounds: offset=%d", h.name, offset)
	}
	return v, nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (h *Heap) ReadU32(offset uint32) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("%s: memory read out of bounds: offset=%d", h.name, offset)
	}
	return v, nil
}

// ReadU64 reads an unsigned 64-bit little-endian value.
func (h *Heap) ReadU64(offset uint32) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.mem.ReadUint64Le(offset)
	if !ok {
		return 0, fmt.Errorf("%s: memory read out of bounds: offset=%d", h.name, offset)
	}
	return v, nil
}

// WriteU8 writes an unsigned 8-bit value.
func (h *Heap) WriteU8(offset uint32, value uint8) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.mem.WriteByte(offset, value) {
		return fmt.Errorf("%s: memory write out of bounds: offset=%d", h.name, offset)
	}
	return nil
}

// WriteU16 writes an unsigned 16-bit little-endian value.
func (h *Heap) WriteU16(offset uint32, value uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.mem.WriteUint16Le(offset, value) {
		return fmt.Errorf("%s: memory write out of bounds: offset=%d", h.name, offset)
	}
	return nil
}

// WriteU32 writes an unsigned 32-bit little-endian value.
func (h *Heap) WriteU32(offset uint32, value uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("%s: memory write out of bounds: offset=%d", h.name, offset)
	}
	return nil
}

// WriteU64 writes an unsigned 64-bit little-endian value.
func (h *Heap) WriteU64(offset uint32, value uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.mem.WriteUint64Le(offset, value) {
		return fmt.Errorf("%s: memory write out of bounds: offset=%d", h.name, offset)
	}
	return nil
}

// memoryModule encodes a module whose only content is one exported memory
// named "memory" with minPages pages and, if maxPages > 0, a maximum.
func memoryModule(minPages, maxPages uint32) []byte {
	limits := []byte{0x00}
	if maxPages > 0 {
		limits[0] = 0x01
	}
	limits = appendULEB(limits, minPages)
	if maxPages > 0 {
		limits = appendULEB(limits, maxPages)
	}

	memSection := append([]byte{0x01}, limits...) // one memory
	out := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
		0x05, // memory section
	}
	out = appendULEB(out, uint32(len(memSection)))
	out = append(out, memSection...)
	out = append(out,
		0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
		0x06, 'm', 'e', 'm', 'o', 'r', 'y',
		0x02, 0x00, // kind: memory, index 0
	)
	return out
}

func appendULEB(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}
