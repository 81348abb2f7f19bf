package heap

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

func newHeap(t *testing.T, maxPages uint32) *Heap {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	h, err := New(ctx, rt, "test", maxPages)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return h
}

func TestMemoryModule_Encoding(t *testing.T) {
	// The unbounded one-page module matches the canonical hand-written bytes.
	want := []byte{
		0x00, 0x61, 0x73, 0x6d,
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x03, 0x01, 0x00, 0x01,
		0x07, 0x0a, 0x01,
		0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79,
		0x02, 0x00,
	}
	if got := memoryModule(1, 0); !bytes.Equal(got, want) {
		t.Fatalf("memoryModule(1, 0) = % x", got)
	}

	// 200 needs two LEB128 bytes.
	got := memoryModule(1, 200)
	if !bytes.Equal(got[8:15], []byte{0x05, 0x05, 0x01, 0x01, 0x01, 0xc8, 0x01}) {
		t.Fatalf("bounded memory section = % x", got[8:15])
	}
}

func TestHeap_AllocFree(t *testing.T) {
	h := newHeap(t, 0)

	p1, err := h.Alloc(10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p1 == 0 {
		t.Fatal("allocation must never return the null address")
	}
	if p1%8 != 0 {
		t.Fatalf("ptr %d not 8-aligned", p1)
	}
	p2, _ := h.Alloc(24, 8)
	if p2 < p1+16 {
		t.Fatalf("blocks overlap: %d, %d", p1, p2)
	}
	if h.Live() != 16+24 || h.Blocks() != 2 {
		t.Fatalf("Live=%d Blocks=%d", h.Live(), h.Blocks())
	}

	if err := h.Release(p1); err != nil {
		t.Fatal(err)
	}
	p3, _ := h.Alloc(8, 8)
	if p3 != p1 {
		t.Fatalf("first fit should reuse %d, got %d", p1, p3)
	}

	h.Release(p3)
	h.Release(p2)
	if h.Live() != 0 || h.Blocks() != 0 {
		t.Fatalf("Live=%d Blocks=%d after freeing everything", h.Live(), h.Blocks())
	}
}

func TestHeap_DoubleFree(t *testing.T) {
	h := newHeap(t, 0)

	p, _ := h.Alloc(32, 8)
	if err := h.Release(p); err != nil {
		t.Fatal(err)
	}
	if err := h.Release(p); err == nil {
		t.Fatal("second Release must fail")
	}
	h.Free(12345, 8, 8)
	if h.InvalidFrees() != 2 {
		t.Fatalf("InvalidFrees = %d, want 2", h.InvalidFrees())
	}
}

func TestHeap_AllocZeroes(t *testing.T) {
	h := newHeap(t, 0)

	p, _ := h.Alloc(16, 8)
	h.Write(p, bytes.Repeat([]byte{0xAB}, 16))
	h.Release(p)

	q, _ := h.Alloc(16, 8)
	data, _ := h.Read(q, 16)
	if !bytes.Equal(data, make([]byte, 16)) {
		t.Fatalf("reused block not cleared: % x", data)
	}
}

func TestHeap_Grow(t *testing.T) {
	h := newHeap(t, 0)

	p, err := h.Alloc(3*pageSize, 8)
	if err != nil {
		t.Fatalf("large alloc failed: %v", err)
	}
	if h.Size() < p+3*pageSize {
		t.Fatalf("memory size %d too small for block at %d", h.Size(), p)
	}
	if err := h.WriteU32(p+3*pageSize-4, 0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
}

func TestHeap_MaxPages(t *testing.T) {
	h := newHeap(t, 2)

	if _, err := h.Alloc(pageSize, 8); err != nil {
		t.Fatalf("alloc within limit failed: %v", err)
	}
	if _, err := h.Alloc(2*pageSize, 8); err == nil {
		t.Fatal("alloc past the memory maximum must fail")
	}
}

func TestHeap_ReadIsView(t *testing.T) {
	h := newHeap(t, 0)

	p, _ := h.Alloc(4, 8)
	h.Write(p, []byte{1, 2, 3, 4})

	view, _ := h.Read(p, 4)
	snapshot, _ := h.Copy(p, 4)
	h.WriteU8(p, 9)

	if view[0] != 9 {
		t.Fatal("Read should alias linear memory")
	}
	if snapshot[0] != 1 {
		t.Fatal("Copy must not alias linear memory")
	}
}

func TestHeap_OutOfBounds(t *testing.T) {
	h := newHeap(t, 0)

	if _, err := h.Read(h.Size()-2, 4); err == nil {
		t.Error("Read past the end should fail")
	}
	if err := h.Write(h.Size(), []byte{1}); err == nil {
		t.Error("Write past the end should fail")
	}
	if _, err := h.ReadU64(h.Size() - 4); err == nil {
		t.Error("ReadU64 past the end should fail")
	}
}

func TestHeap_Alignment(t *testing.T) {
	h := newHeap(t, 0)

	h.Alloc(8, 8)
	p, err := h.Alloc(8, 64)
	if err != nil {
		t.Fatal(err)
	}
	if p%64 != 0 {
		t.Fatalf("ptr %d not 64-aligned", p)
	}
	if _, err := h.Alloc(8, 12); err == nil {
		t.Fatal("non power of two alignment must fail")
	}
}
