// Package heap provides a first-fit allocator over a wazero linear memory.
package heap

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/cvbridge/errors"
)

const (
	pageSize = 65536
	minAlign = 8
	// reserved keeps address 0 unused so a zero Ptr is always null.
	reserved = minAlign
)

// Heap allocates blocks in the exported memory of a memory-only module.
// All methods are safe for concurrent use.
type Heap struct {
	name string
	mod  api.Module
	mem  api.Memory

	mu     sync.Mutex
	blocks map[uint32]uint32 // ptr -> rounded size
	free   []span            // sorted by ptr, coalesced
	top    uint32
	live   uint64

	invalidFrees int64
}

type span struct {
	ptr, size uint32
}

// New instantiates a memory-only module named name in rt.
// maxPages of 0 leaves the memory bounded only by the runtime limit.
func New(ctx context.Context, rt wazero.Runtime, name string, maxPages uint32) (*Heap, error) {
	compiled, err := rt.CompileModule(ctx, memoryModule(1, maxPages))
	if err != nil {
		return nil, fmt.Errorf("compile %s memory: %w", name, err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, fmt.Errorf("instantiate %s memory: %w", name, err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		_ = mod.Close(ctx)
		return nil, fmt.Errorf("%s: module exports no memory", name)
	}
	return &Heap{
		name:   name,
		mod:    mod,
		mem:    mem,
		blocks: make(map[uint32]uint32),
		top:    reserved,
	}, nil
}

// Name returns the module name the heap was created with.
func (h *Heap) Name() string {
	return h.name
}

// Size returns the current size of the underlying memory in bytes.
func (h *Heap) Size() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mem.Size()
}

// Alloc reserves size bytes aligned to align (at least 8) and returns the address.
// Zero-sized requests get a distinct minimal block.
func (h *Heap) Alloc(size, align uint32) (uint32, error) {
	if align < minAlign {
		align = minAlign
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseNative, fmt.Sprintf("alignment %d is not a power of two", align))
	}
	rounded := roundUp(max(size, 1), minAlign)

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.free {
		if s.ptr%align != 0 || s.size < rounded {
			continue
		}
		if s.size == rounded {
			h.free = append(h.free[:i], h.free[i+1:]...)
		} else {
			h.free[i] = span{ptr: s.ptr + rounded, size: s.size - rounded}
		}
		return h.commit(s.ptr, rounded), nil
	}

	ptr := roundUp(h.top, align)
	end := uint64(ptr) + uint64(rounded)
	if end > uint64(^uint32(0)) {
		return 0, errors.AllocationFailed(errors.PhaseNative, size, align)
	}
	if cur := uint64(h.mem.Size()); end > cur {
		pages := uint32((end - cur + pageSize - 1) / pageSize)
		if _, ok := h.mem.Grow(pages); !ok {
			return 0, errors.AllocationFailed(errors.PhaseNative, size, align)
		}
	}
	if ptr > h.top {
		h.insertFree(span{ptr: h.top, size: ptr - h.top})
	}
	h.top = uint32(end)
	return h.commit(ptr, rounded), nil
}

// commit records a live block and clears stale contents. Caller holds mu.
func (h *Heap) commit(ptr, size uint32) uint32 {
	h.blocks[ptr] = size
	h.live += uint64(size)
	if buf, ok := h.mem.Read(ptr, size); ok {
		clear(buf)
	}
	return ptr
}

// Free implements cvbridge.Allocator. Invalid frees are counted, not fatal.
func (h *Heap) Free(ptr, size, align uint32) {
	_ = h.Release(ptr)
}

// Release frees the block at ptr.
func (h *Heap) Release(ptr uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	size, ok := h.blocks[ptr]
	if !ok {
		h.invalidFrees++
		return errors.New(errors.PhaseRelease, errors.KindDoubleRelease).
			Op(h.name + ".free").
			Value(ptr).
			Detail("address %#x is not a live block", ptr).
			Build()
	}
	delete(h.blocks, ptr)
	h.live -= uint64(size)
	h.insertFree(span{ptr: ptr, size: size})
	return nil
}

// insertFree adds s to the free list, merging neighbours and giving the tail
// back to the bump pointer. Caller holds mu.
func (h *Heap) insertFree(s span) {
	i := sort.Search(len(h.free), func(i int) bool { return h.free[i].ptr > s.ptr })
	h.free = append(h.free, span{})
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = s

	if i+1 < len(h.free) && h.free[i].ptr+h.free[i].size == h.free[i+1].ptr {
		h.free[i].size += h.free[i+1].size
		h.free = append(h.free[:i+1], h.free[i+2:]...)
	}
	if i > 0 && h.free[i-1].ptr+h.free[i-1].size == h.free[i].ptr {
		h.free[i-1].size += h.free[i].size
		h.free = append(h.free[:i], h.free[i+1:]...)
		i--
	}
	if last := h.free[len(h.free)-1]; last.ptr+last.size == h.top {
		h.top = last.ptr
		h.free = h.free[:len(h.free)-1]
	}
}

// BlockSize returns the rounded size of the live block at ptr.
func (h *Heap) BlockSize(ptr uint32) (uint32, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	size, ok := h.blocks[ptr]
	return size, ok
}

// Live returns the number of bytes in live blocks.
func (h *Heap) Live() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.live
}

// Blocks returns the number of live blocks.
func (h *Heap) Blocks() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}

// InvalidFrees returns how many frees named an address that was not live.
func (h *Heap) InvalidFrees() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.invalidFrees
}

// Close releases the module backing the heap.
func (h *Heap) Close(ctx context.Context) error {
	return h.mod.Close(ctx)
}

func roundUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}
